// Package render turns a session.State into the result card, as plain text
// for the terminal or as an HTML page for the browser.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"travel/internal/models"
	"travel/internal/session"
)

const (
	ErrorTitle     = "Oops! Location Not Found"
	NoPlacesNotice = "No tourist attractions found nearby. This location might be remote or have limited data."
)

// Number formats v the shortest way that round-trips, so 18 prints as "18"
// and 18.5 as "18.5".
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func WeatherLine(place string, w *models.Weather) string {
	return fmt.Sprintf("In %s it's currently %s°C with a %s%% chance to rain.", place, Number(w.Temperature), Number(w.RainChance))
}

func PlacesIntro(place string) string {
	return fmt.Sprintf("In %s these are the places you can go:", place)
}

// Text writes the card for s. A loading state writes nothing.
func Text(w io.Writer, s session.State) error {
	var b strings.Builder

	switch {
	case s.Error != "":
		b.WriteString(ErrorTitle + "\n")
		b.WriteString(s.Error + "\n")
	case s.Result != nil:
		r := s.Result
		b.WriteString(r.Place + "\n")
		if r.DisplayName != "" {
			b.WriteString(r.DisplayName + "\n")
		}
		if r.Weather != nil {
			b.WriteString("\n" + WeatherLine(r.Place, r.Weather) + "\n")
		}
		if r.Places != nil {
			b.WriteString("\n")
			if len(r.Places) == 0 {
				b.WriteString(NoPlacesNotice + "\n")
			} else {
				b.WriteString(PlacesIntro(r.Place) + "\n")
				for i, p := range r.Places {
					fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
				}
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
