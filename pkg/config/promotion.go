package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/noah-isme/ams-api/internal/models"
)

// DefaultGraduatingThreshold is the year code above which students are archived.
const DefaultGraduatingThreshold = 400

// LoadPromotionTable reads the code→id lookup tables used by the yearly update.
// The file may be YAML, JSON or TOML; keys must be quoted codes.
func LoadPromotionTable(path string) (models.PromotionTable, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("graduating_threshold", DefaultGraduatingThreshold)
	if err := v.ReadInConfig(); err != nil {
		return models.PromotionTable{}, fmt.Errorf("read promotion table %s: %w", path, err)
	}

	table := models.PromotionTable{
		GraduatingThreshold: v.GetInt("graduating_threshold"),
		Years:               trimKeys(v.GetStringMapString("years")),
		Sections:            trimKeys(v.GetStringMapString("sections")),
	}
	if len(table.Years) == 0 {
		return models.PromotionTable{}, fmt.Errorf("promotion table %s: no year entries", path)
	}
	if len(table.Sections) == 0 {
		return models.PromotionTable{}, fmt.Errorf("promotion table %s: no section entries", path)
	}
	return table, nil
}

func trimKeys(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
