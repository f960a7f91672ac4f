package report

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/i474232898/weather-report/internal/locale"
	"github.com/i474232898/weather-report/internal/weather"
)

// ParseModeHTML tells the delivery side to interpret inline <strong> markup.
const ParseModeHTML = "HTML"

// hourGlyphBase is IDEOGRAPHIC TELEGRAPH SYMBOL FOR HOUR ZERO; hours 0-24
// follow it consecutively.
const hourGlyphBase = 0x3358

// Renderer composes the text report from a weather.ReportInput using one
// localization table. It is stateless and safe for concurrent use.
type Renderer struct {
	tables  *locale.Tables
	sources []string
}

var _ weather.Renderer = (*Renderer)(nil)

// New creates a Renderer. sources are listed in the footer.
func New(tables *locale.Tables, sources ...string) *Renderer {
	return &Renderer{
		tables:  tables,
		sources: append([]string(nil), sources...),
	}
}

func (r *Renderer) ParseMode() string {
	return ParseModeHTML
}

// Render produces the report document. Identical input yields identical output.
func (r *Renderer) Render(in weather.ReportInput) string {
	var b strings.Builder
	p := r.tables.Phrases()
	offset := in.Timezone.Offset()

	r.writeHeader(&b, in)
	b.WriteString("\n")

	fmt.Fprintf(&b, "<strong>%s</strong>\n", p.Astronomy)
	r.writeAstro(&b, in.Astro, offset)

	for _, day := range in.Days {
		b.WriteString("\n")
		fmt.Fprintf(&b, "<strong>%s</strong>\n", day.Date())
		for _, slot := range day.Slots {
			b.WriteString(r.slotLine(slot))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s %s\n", p.GeneratedAt,
		weather.RenderInstant(weather.ToLocal(in.GeneratedAt, offset), false),
		weather.RenderOffset(offset))
	if len(r.sources) > 0 {
		fmt.Fprintf(&b, "%s: %s\n", p.Sources, html.EscapeString(strings.Join(r.sources, "; ")))
	}
	return b.String()
}

func (r *Renderer) writeHeader(b *strings.Builder, in weather.ReportInput) {
	p := r.tables.Phrases()
	m := in.Metadata

	fmt.Fprintf(b, "%s: %.4f, %.4f\n", p.Location, m.Query.Lat, m.Query.Lng)
	fmt.Fprintf(b, "%s: %.4f, %.4f (%d %s)\n", p.GridPoint, m.Forecast.Lat, m.Forecast.Lng, m.Count, p.Slots)
	if m.Place != "" {
		fmt.Fprintf(b, "%s: %s\n", p.Place, html.EscapeString(m.Place))
	}

	tz := in.Timezone
	dst := p.No
	if tz.DST() {
		dst = p.Yes
	}
	name := tz.ID
	if tz.Name != "" && tz.Name != tz.ID {
		name = fmt.Sprintf("%s (%s)", tz.ID, tz.Name)
	}
	fmt.Fprintf(b, "%s: %s %s, %s: %s\n", p.TimeZone, html.EscapeString(name), weather.RenderOffset(tz.Offset()), p.DST, dst)
}

func (r *Renderer) writeAstro(b *strings.Builder, a weather.AstroSnapshot, offset int) {
	p := r.tables.Phrases()
	if !a.Available {
		fmt.Fprintf(b, "%s\n", p.NoAstroData)
		return
	}

	at := func(t *time.Time) string {
		if t == nil {
			return p.NotApplicable
		}
		return weather.RenderInstant(weather.ToLocal(*t, offset), true)
	}

	fmt.Fprintf(b, "%s %s, %s %s\n", p.Sunrise, at(a.Sunrise), p.Sunset, at(a.Sunset))
	fmt.Fprintf(b, "%s %s, %s %s\n", p.Moonrise, at(a.Moonrise), p.Moonset, at(a.Moonset))
	for _, band := range []struct {
		label string
		band  weather.TwilightBand
	}{
		{p.CivilTwilight, a.Civil},
		{p.NauticalTwilight, a.Nautical},
		{p.AstronomicalTwilight, a.Astronomical},
	} {
		fmt.Fprintf(b, "%s %s - %s\n", band.label, at(band.band.Begin), at(band.band.End))
	}
}

// slotLine renders hour, temperature, cloud, wind and (when mapped) weather.
func (r *Renderer) slotLine(s weather.ForecastSlot) string {
	sep := r.tables.Separator()
	parts := []string{
		r.hour(s.LocalForecastTime) + " " + fmt.Sprintf("%.1f%s", s.Temperature2m, r.tables.TemperatureUnit()),
		r.tables.Cloud(s.CloudCoverPct),
		r.tables.Wind(s.MaxWind10m),
	}
	if s.WeatherCode != nil {
		if desc := r.tables.Weather(locale.WeatherCode(*s.WeatherCode)); desc != "" {
			parts = append(parts, desc)
		}
	}
	return strings.Join(parts, sep)
}

func (r *Renderer) hour(l weather.LocalInstant) string {
	if r.tables.HourGlyphs() {
		return string(rune(hourGlyphBase + l.Time().Hour()))
	}
	return weather.RenderInstant(l, true)
}
