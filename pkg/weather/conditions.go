package weather

import "strings"

// General condition buckets used for revenue correlation
const (
	ConditionSunny        = "Sunny"
	ConditionPartlyCloudy = "Partly cloudy"
	ConditionCloudy       = "Cloudy"
	ConditionLightRain    = "Light rain"
	ConditionHeavyRain    = "Heavy rain"
	ConditionThunderstorm = "Thunderstorm"
	ConditionSnow         = "Snow"
	ConditionFoggy        = "Foggy"
	ConditionUnknown      = "Unknown"
)

// conditionRules match raw descriptions by substring, first hit wins.
// Sunny/clear must be checked before the cloud rules so "Clear sky"
// never lands in a cloud bucket.
var conditionRules = []struct {
	substrings []string
	condition  string
}{
	{[]string{"sunny", "clear"}, ConditionSunny},
	{[]string{"thunder"}, ConditionThunderstorm},
	{[]string{"snow", "sleet", "blizzard", "ice"}, ConditionSnow},
	{[]string{"heavy rain", "torrential", "downpour"}, ConditionHeavyRain},
	{[]string{"rain", "drizzle", "shower"}, ConditionLightRain},
	{[]string{"fog", "mist", "haze"}, ConditionFoggy},
	{[]string{"partly cloud"}, ConditionPartlyCloudy},
	{[]string{"cloud", "overcast"}, ConditionCloudy},
}

// GeneralCondition normalises a raw weather description to one of the
// fixed correlation buckets. Matching is case-insensitive substring, in a
// fixed priority order.
func GeneralCondition(description string) string {
	d := strings.ToLower(description)
	for _, rule := range conditionRules {
		for _, s := range rule.substrings {
			if strings.Contains(d, s) {
				return rule.condition
			}
		}
	}
	return ConditionUnknown
}
