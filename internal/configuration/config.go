package configuration

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/thermalkit/isp2go/internal/ui"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// Node is the name of the thermal node the cooling device binds to.
	Node string `json:"node"`

	// MaxDevices limits the id pool for registered cooling devices.
	MaxDevices int `json:"maxDevices"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`

	Calibration CalibrationConfig `json:"calibration"`
	Zones       []ZoneConfig      `json:"zones"`
}

var CurrentConfig Configuration

// InitConfig sets up the viper search paths and default values.
func InitConfig(cfgFile string) {
	viper.SetConfigName("isp2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/isp2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/isp2go/isp2go.db")
	viper.SetDefault("node", "exynos_isp_thermal")
	viper.SetDefault("maxDevices", 8)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9407)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9408)

	viper.SetDefault("zones", []ZoneConfig{})
}

// DetectConfigFile reads in the config file detected by viper and
// returns the path of the file that was used.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(calibrationRangeHookFunc()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
