package locale

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CloudCover is the coarse cloud-cover category shown in a forecast line.
type CloudCover int

const (
	Clear CloudCover = iota
	PartlyCloudy
	Overcast
)

// CloudCategory maps a total cloud cover percentage to its category.
// Thresholds are inclusive on the upper tier.
func CloudCategory(pct float64) CloudCover {
	switch {
	case pct >= 80:
		return Overcast
	case pct >= 40:
		return PartlyCloudy
	default:
		return Clear
	}
}

// WindForce is a wind-speed band, calm through super typhoon.
type WindForce int

const (
	Calm WindForce = iota
	LightAir
	LightBreeze
	GentleBreeze
	ModerateBreeze
	FreshBreeze
	StrongBreeze
	NearGale
	Gale
	StrongGale
	Storm
	ViolentStorm
	Typhoon
	StrongTyphoon
	SuperTyphoon

	numWindForces
)

// NumWindForces is the number of labels a table must provide for wind bands.
const NumWindForces = int(numWindForces)

// windBands holds [min, max) in m/s for each WindForce.
var windBands = [numWindForces][2]float64{
	Calm:           {0.0, 0.3},
	LightAir:       {0.3, 1.6},
	LightBreeze:    {1.6, 3.4},
	GentleBreeze:   {3.4, 5.5},
	ModerateBreeze: {5.5, 8.0},
	FreshBreeze:    {8.0, 10.8},
	StrongBreeze:   {10.8, 13.9},
	NearGale:       {13.9, 17.2},
	Gale:           {17.2, 20.8},
	StrongGale:     {20.8, 24.5},
	Storm:          {24.5, 28.5},
	ViolentStorm:   {28.5, 32.6},
	Typhoon:        {32.6, 37.0},
	StrongTyphoon:  {37.0, 51.0},
	SuperTyphoon:   {51.0, 9999},
}

// WindForceFor returns the band containing speed (m/s) after rounding it to
// one decimal. ok is false for negative, NaN or out-of-table speeds.
func WindForceFor(speed float64) (force WindForce, ok bool) {
	if math.IsNaN(speed) || speed < 0 {
		return 0, false
	}
	speed = math.Round(speed*10) / 10
	for f := Calm; f < numWindForces; f++ {
		if speed >= windBands[f][0] && speed < windBands[f][1] {
			return f, true
		}
	}
	return 0, false
}

// WeatherCode is the present-weather code (ww) carried by the forecast feed.
type WeatherCode int

// Phrases are the fixed strings of the report layout.
type Phrases struct {
	Location             string `yaml:"location" validate:"required"`
	GridPoint            string `yaml:"gridPoint" validate:"required"`
	Slots                string `yaml:"slots" validate:"required"`
	Place                string `yaml:"place" validate:"required"`
	TimeZone             string `yaml:"timeZone" validate:"required"`
	DST                  string `yaml:"dst" validate:"required"`
	Yes                  string `yaml:"yes" validate:"required"`
	No                   string `yaml:"no" validate:"required"`
	Astronomy            string `yaml:"astronomy" validate:"required"`
	NoAstroData          string `yaml:"noAstroData" validate:"required"`
	Sunrise              string `yaml:"sunrise" validate:"required"`
	Sunset               string `yaml:"sunset" validate:"required"`
	Moonrise             string `yaml:"moonrise" validate:"required"`
	Moonset              string `yaml:"moonset" validate:"required"`
	CivilTwilight        string `yaml:"civilTwilight" validate:"required"`
	NauticalTwilight     string `yaml:"nauticalTwilight" validate:"required"`
	AstronomicalTwilight string `yaml:"astronomicalTwilight" validate:"required"`
	NotApplicable        string `yaml:"notApplicable" validate:"required"`
	GeneratedAt          string `yaml:"generatedAt" validate:"required"`
	Sources              string `yaml:"sources" validate:"required"`
}

// CloudLabels names the three cloud-cover categories.
type CloudLabels struct {
	Clear        string `yaml:"clear" validate:"required"`
	PartlyCloudy string `yaml:"partlyCloudy" validate:"required"`
	Overcast     string `yaml:"overcast" validate:"required"`
}

// Definition is the serialisable form of a localization table.
type Definition struct {
	Name            string         `yaml:"name" validate:"required"`
	HourGlyphs      bool           `yaml:"hourGlyphs"`
	TemperatureUnit string         `yaml:"temperatureUnit" validate:"required"`
	Separator       string         `yaml:"separator" validate:"required"`
	Cloud           CloudLabels    `yaml:"cloud"`
	Wind            []string       `yaml:"wind" validate:"len=15,dive,required"`
	WindUnknown     string         `yaml:"windUnknown" validate:"required"`
	Weather         map[int]string `yaml:"weather"`
	Phrases         Phrases        `yaml:"phrases"`
}

// Tables is an immutable localization table. Build one with New, Lookup or
// LoadFile and share it freely between goroutines.
type Tables struct {
	name        string
	hourGlyphs  bool
	tempUnit    string
	separator   string
	cloud       [3]string
	wind        [numWindForces]string
	windUnknown string
	weather     map[WeatherCode]string
	phrases     Phrases
}

// New validates def and builds a Tables from it.
func New(def Definition) (*Tables, error) {
	if err := validate.Struct(def); err != nil {
		return nil, fmt.Errorf("invalid locale table %q: %w", def.Name, err)
	}

	t := &Tables{
		name:        def.Name,
		hourGlyphs:  def.HourGlyphs,
		tempUnit:    def.TemperatureUnit,
		separator:   def.Separator,
		cloud:       [3]string{def.Cloud.Clear, def.Cloud.PartlyCloudy, def.Cloud.Overcast},
		windUnknown: def.WindUnknown,
		weather:     make(map[WeatherCode]string, len(def.Weather)),
		phrases:     def.Phrases,
	}
	copy(t.wind[:], def.Wind)
	for code, label := range def.Weather {
		t.weather[WeatherCode(code)] = label
	}
	return t, nil
}

func mustNew(def Definition) *Tables {
	t, err := New(def)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tables) Name() string            { return t.name }
func (t *Tables) HourGlyphs() bool        { return t.hourGlyphs }
func (t *Tables) TemperatureUnit() string { return t.tempUnit }
func (t *Tables) Separator() string       { return t.separator }
func (t *Tables) Phrases() Phrases        { return t.phrases }

// Cloud returns the label for a cloud cover percentage.
func (t *Tables) Cloud(pct float64) string {
	return t.cloud[CloudCategory(pct)]
}

// Wind returns the label for a wind speed in m/s. A nil speed, or one that
// falls outside every band, yields the "wind unknown" label.
func (t *Tables) Wind(speed *float64) string {
	if speed == nil {
		return t.windUnknown
	}
	f, ok := WindForceFor(*speed)
	if !ok {
		return t.windUnknown
	}
	return t.wind[f]
}

// WindUnknown returns the placeholder used when no band applies.
func (t *Tables) WindUnknown() string {
	return t.windUnknown
}

// Weather returns the description for code, or "" when the code is unmapped.
func (t *Tables) Weather(code WeatherCode) string {
	return t.weather[code]
}
