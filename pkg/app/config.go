package app

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/trackhub-io/trackhub/pkg/log"
)

const configFlagName = "config"

var configFile string

func addConfigFlag(basename string, fs *pflag.FlagSet) {
	fs.StringVarP(&configFile, configFlagName, "c", "", "Path to the configuration file (default searches ./, $HOME/."+basename+", /etc/"+basename+").")
}

// bindConfig layers viper on top of the already-registered flags: values come
// from flag defaults, then the config file, then environment variables, then
// explicit flags. The options struct is re-unmarshalled whenever the file
// changes on disk.
func bindConfig(basename string, cmd *cobra.Command, opts Options, onReload func()) error {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(basename)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/." + basename)
		v.AddConfigPath("/etc/" + basename)
	}

	v.SetEnvPrefix(strings.ReplaceAll(strings.ToUpper(basename), "-", "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; flags and defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Info("Loaded configuration file", "file", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	v.OnConfigChange(func(in fsnotify.Event) {
		log.Info("Configuration file changed, reloading", "file", in.Name)
		if err := v.Unmarshal(opts); err != nil {
			log.Error(err, "Failed to re-unmarshal config, keeping previous values")
			return
		}
		if onReload != nil {
			onReload()
		}
	})
	v.WatchConfig()

	return nil
}
