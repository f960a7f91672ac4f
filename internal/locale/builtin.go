package locale

import (
	"fmt"
	"strings"
)

var chineseDefinition = Definition{
	Name:            "zh",
	HourGlyphs:      true,
	TemperatureUnit: "℃",
	Separator:       ",",
	Cloud: CloudLabels{
		Clear:        "晴",
		PartlyCloudy: "多云",
		Overcast:     "阴",
	},
	Wind: []string{
		"无风", "软风", "轻风", "微风", "和风",
		"清风", "强风", "劲风", "大风", "烈风",
		"狂风", "暴风", "台风", "强台风", "超强台风",
	},
	WindUnknown: "风力未知",
	Weather: map[int]string{
		3:  "云量增加",
		20: "雾", 21: "降水", 22: "毛毛雨雪", 23: "雨", 24: "雪",
		25: "冻雨或冻毛毛雨", 26: "雷阵雨", 27: "沙尘暴或雪暴",
		28: "沙尘暴或雪暴，能见度一般", 29: "沙尘暴或雪暴，能见度差",
		30: "雾", 31: "偶有雾或冰雾", 32: "雾或冰雾正在消散", 33: "雾或冰雾维持原状",
		34: "雾或冰雾正在变浓", 35: "降霜",
		40: "降水", 41: "有降水", 42: "强烈降水", 43: "液态降水", 44: "强烈液态降水",
		45: "固态降水", 46: "强烈固态降水", 47: "冻雨", 48: "强烈冻雨",
		50: "毛毛雨", 51: "轻微毛毛雨", 52: "中等毛毛雨", 53: "强烈毛毛雨",
		54: "轻微冻毛毛雨", 55: "中等冻毛毛雨", 56: "强烈冻毛毛雨", 57: "轻微降雨", 58: "较多降雨",
		60: "降雨", 61: "小雨", 62: "中雨", 63: "大雨", 64: "冻雨小雨", 65: "冻雨中雨",
		66: "冻雨大雨", 67: "轻微雨雪", 68: "较多雨雪",
		70: "降雪", 71: "小雪", 72: "中雪", 73: "大雪", 74: "轻微冰珠", 75: "中等冰珠",
		76: "强烈冰珠", 77: "雪雾", 78: "冰粒",
		80: "阵雨", 81: "间有小雨", 82: "间有中雨", 83: "间有大雨", 84: "间有暴雨",
		85: "间有小雪", 86: "间有中雪", 87: "间有大雪", 89: "冰雹",
		90: "雷阵雨", 91: "雷电天气", 92: "雷阵雨", 93: "雷阵雨伴有冰雹", 94: "强烈雷电天气",
		95: "强烈雷阵雨", 96: "强烈雷阵雨伴有冰雹", 99: "龙卷风",
	},
	Phrases: Phrases{
		Location:             "预报地点",
		GridPoint:            "格点",
		Slots:                "预报数",
		Place:                "位置",
		TimeZone:             "时区",
		DST:                  "夏令时",
		Yes:                  "是",
		No:                   "否",
		Astronomy:            "天文",
		NoAstroData:          "暂无天文数据",
		Sunrise:              "日出",
		Sunset:               "日落",
		Moonrise:             "月出",
		Moonset:              "月落",
		CivilTwilight:        "民用晨昏",
		NauticalTwilight:     "航海晨昏",
		AstronomicalTwilight: "天文晨昏",
		NotApplicable:        "不适用",
		GeneratedAt:          "生成时间",
		Sources:              "数据来源",
	},
}

var englishDefinition = Definition{
	Name:            "en",
	TemperatureUnit: "°C",
	Separator:       ", ",
	Cloud: CloudLabels{
		Clear:        "clear",
		PartlyCloudy: "partly cloudy",
		Overcast:     "overcast",
	},
	Wind: []string{
		"calm", "light air", "light breeze", "gentle breeze", "moderate breeze",
		"fresh breeze", "strong breeze", "near gale", "gale", "strong gale",
		"storm", "violent storm", "typhoon", "strong typhoon", "super typhoon",
	},
	WindUnknown: "wind unknown",
	Weather: map[int]string{
		3:  "cloud cover increasing",
		20: "fog", 21: "precipitation", 22: "drizzle or snow grains", 23: "rain", 24: "snow",
		25: "freezing rain or drizzle", 26: "thundershower", 27: "dust or snow storm",
		28: "dust or snow storm, moderate visibility", 29: "dust or snow storm, poor visibility",
		30: "fog", 31: "patches of fog or ice fog", 32: "fog or ice fog thinning",
		33: "fog or ice fog unchanged", 34: "fog or ice fog thickening", 35: "rime",
		40: "precipitation", 41: "some precipitation", 42: "heavy precipitation",
		43: "liquid precipitation", 44: "heavy liquid precipitation", 45: "solid precipitation",
		46: "heavy solid precipitation", 47: "freezing precipitation", 48: "heavy freezing precipitation",
		50: "drizzle", 51: "slight drizzle", 52: "moderate drizzle", 53: "heavy drizzle",
		54: "slight freezing drizzle", 55: "moderate freezing drizzle", 56: "heavy freezing drizzle",
		57: "slight rain", 58: "moderate rain",
		60: "rain", 61: "light rain", 62: "moderate rain", 63: "heavy rain",
		64: "light freezing rain", 65: "moderate freezing rain", 66: "heavy freezing rain",
		67: "light rain and snow", 68: "rain and snow",
		70: "snow", 71: "light snow", 72: "moderate snow", 73: "heavy snow",
		74: "light ice pellets", 75: "moderate ice pellets", 76: "heavy ice pellets",
		77: "snow grains", 78: "ice crystals",
		80: "showers", 81: "light rain showers", 82: "moderate rain showers", 83: "heavy rain showers",
		84: "violent rain showers", 85: "light snow showers", 86: "moderate snow showers",
		87: "heavy snow showers", 89: "hail",
		90: "thundershower", 91: "thunderstorm", 92: "thundershower", 93: "thundershower with hail",
		94: "heavy thunderstorm", 95: "heavy thundershower", 96: "heavy thundershower with hail",
		99: "tornado",
	},
	Phrases: Phrases{
		Location:             "Location",
		GridPoint:            "Grid point",
		Slots:                "slots",
		Place:                "Place",
		TimeZone:             "Time zone",
		DST:                  "DST",
		Yes:                  "yes",
		No:                   "no",
		Astronomy:            "Astronomy",
		NoAstroData:          "No astronomical data available",
		Sunrise:              "Sunrise",
		Sunset:               "Sunset",
		Moonrise:             "Moonrise",
		Moonset:              "Moonset",
		CivilTwilight:        "Civil twilight",
		NauticalTwilight:     "Nautical twilight",
		AstronomicalTwilight: "Astronomical twilight",
		NotApplicable:        "n/a",
		GeneratedAt:          "Generated at",
		Sources:              "Sources",
	},
}

var (
	chinese = mustNew(chineseDefinition)
	english = mustNew(englishDefinition)
)

// Chinese returns the built-in Chinese table.
func Chinese() *Tables { return chinese }

// English returns the built-in English table.
func English() *Tables { return english }

// Lookup returns a built-in table by name ("zh" or "en").
func Lookup(name string) (*Tables, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "zh", "zh-cn", "cn":
		return chinese, nil
	case "en", "en-us", "en-gb":
		return english, nil
	default:
		return nil, fmt.Errorf("unknown locale %q", name)
	}
}
