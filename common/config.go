/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2019-2026 Wind River Systems, Inc. */

package common

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	perrors "github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

var log = logf.Log.WithName("config")

// ResolverPrefix defines the viper configuration prefix for all resolver
// options.
const ResolverPrefix = "vswitch"

// OptionName is the type alias that represents the path of a resolver option
// relative to the ResolverPrefix.
type OptionName string

// Defines the current list of supported resolver options.
const (
	ComputeLabel        OptionName = "computeLabel"
	Combinations        OptionName = "combinations"
	OverrideEnabled     OptionName = "override.enabled"
	OverrideChart       OptionName = "override.chart"
	OverrideNamespace   OptionName = "override.namespace"
	OverrideApplication OptionName = "override.application"
	OverridePath        OptionName = "override.path"
)

// optionDefaults is the default value for each resolver option.
var optionDefaults = map[OptionName]interface{}{
	ComputeLabel:        DefaultComputeLabel,
	Combinations:        DefaultCombinations,
	OverrideEnabled:     true,
	OverrideChart:       DefaultOverrideChart,
	OverrideNamespace:   DefaultOverrideNamespace,
	OverrideApplication: DefaultOverrideApplication,
	OverridePath:        DefaultOverridePath,
}

// configFilepath is the absolute path of the default config file.
const configFilepath = "/etc/vswitch/config.yaml"

var cfg *viper.Viper

// changed is closed and replaced each time the watched config file changes.
var changedLock sync.Mutex
var changed = make(chan struct{})

// OverrideConfig describes where the operator's persisted vswitch choice is
// stored.
type OverrideConfig struct {
	Enabled     bool
	Chart       string
	Namespace   string
	Application string
	Path        string
}

// ResolverConfig is the typed view of the resolver configuration.
type ResolverConfig struct {
	ComputeLabel string
	Combinations [][]string
	Override     OverrideConfig
}

// OptionPath returns the config attribute path which represents the option
// value of the specified resolver option.
func OptionPath(option OptionName) string {
	return fmt.Sprintf("%s.%s", ResolverPrefix, option)
}

// SetConfigFile changes the file that ReadConfig loads.  A leading "~" is
// expanded to the current user's home directory.
func SetConfigFile(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return perrors.Wrapf(err, "failed to expand config path %q", path)
	}

	cfg.SetConfigFile(expanded)
	return nil
}

// ConfigFileUsed returns the path of the file that ReadConfig loads.
func ConfigFileUsed() string {
	return cfg.ConfigFileUsed()
}

// ReadConfig is a utility which loads the current resolver configuration into
// memory.  When watch is set the file is monitored and reloaded on change.
func ReadConfig(watch bool) (err error) {
	if _, err := os.Stat(cfg.ConfigFileUsed()); os.IsNotExist(err) {
		// The file is not present so use the defaults.
		return nil
	}

	err = cfg.ReadInConfig()
	if err != nil {
		return perrors.Wrap(err, "failed to read config file")
	}

	if watch {
		cfg.OnConfigChange(func(e fsnotify.Event) {
			log.Info("config file changed", "path", e.Name, "op", e.Op.String())
			notifyChanged()
		})
		cfg.WatchConfig()
	}

	log.Info("resolver config has been loaded from file.", "path", cfg.ConfigFileUsed())

	return nil
}

// ConfigChanged returns a channel which is closed the next time the watched
// config file changes.
func ConfigChanged() <-chan struct{} {
	changedLock.Lock()
	defer changedLock.Unlock()
	return changed
}

func notifyChanged() {
	changedLock.Lock()
	defer changedLock.Unlock()
	close(changed)
	changed = make(chan struct{})
}

// GetOption returns the value of the specified option as an Interface value;
// otherwise nil is returned if the option does not exist in the config.
func GetOption(option OptionName) interface{} {
	return cfg.Get(OptionPath(option))
}

// SetOption overrides the value of the specified option.
func SetOption(option OptionName, value interface{}) {
	cfg.Set(OptionPath(option), value)
}

// GetOptionBool returns the value of the specified option as a Bool value;
// otherwise the specified default value is returned if the option does not
// exist.
func GetOptionBool(option OptionName, defaultValue bool) bool {
	value := GetOption(option)
	if value != nil {
		if result, err := cast.ToBoolE(value); err == nil {
			return result
		}
		log.Info("unexpected option type",
			"option", option, "type", reflect.TypeOf(value))
	}

	// Return the caller's default if not found.
	return defaultValue
}

// GetOptionString returns the value of the specified option as a String
// value; otherwise the specified default value is returned.
func GetOptionString(option OptionName, defaultValue string) string {
	value := GetOption(option)
	if value != nil {
		if result, ok := value.(string); ok {
			return result
		}
		log.Info("unexpected option type",
			"option", option, "type", reflect.TypeOf(value))
	}

	return defaultValue
}

// toCombinations converts a configured list of label lists into its typed
// form.  Values read from a file arrive as []interface{} while defaults are
// already typed.
func toCombinations(value interface{}) ([][]string, error) {
	if typed, ok := value.([][]string); ok {
		return typed, nil
	}

	items, err := cast.ToSliceE(value)
	if err != nil {
		return nil, NewValidationError(
			fmt.Sprintf("%s must be a list of label lists", OptionPath(Combinations)))
	}

	result := make([][]string, 0, len(items))
	for _, item := range items {
		labels, err := cast.ToStringSliceE(item)
		if err != nil {
			return nil, NewValidationError(
				fmt.Sprintf("%s entry %v is not a list of labels", OptionPath(Combinations), item))
		}

		result = append(result, labels)
	}

	return result, nil
}

// LoadResolverConfig returns the current resolver configuration.
func LoadResolverConfig() (ResolverConfig, error) {
	combinations, err := toCombinations(GetOption(Combinations))
	if err != nil {
		return ResolverConfig{}, err
	}

	result := ResolverConfig{
		ComputeLabel: strings.TrimSpace(GetOptionString(ComputeLabel, DefaultComputeLabel)),
		Combinations: combinations,
		Override: OverrideConfig{
			Enabled:     GetOptionBool(OverrideEnabled, true),
			Chart:       GetOptionString(OverrideChart, DefaultOverrideChart),
			Namespace:   GetOptionString(OverrideNamespace, DefaultOverrideNamespace),
			Application: GetOptionString(OverrideApplication, DefaultOverrideApplication),
			Path:        GetOptionString(OverridePath, DefaultOverridePath),
		},
	}

	if result.ComputeLabel == "" {
		return ResolverConfig{}, NewValidationError(
			fmt.Sprintf("%s must not be blank", OptionPath(ComputeLabel)))
	}

	return result, nil
}

// ResetConfig restores every option to its default value and forgets any
// previously loaded file.
func ResetConfig() {
	cfg = viper.New()

	// Setup default values for all resolver options.
	for option, value := range optionDefaults {
		cfg.SetDefault(OptionPath(option), value)
	}

	cfg.SetConfigFile(configFilepath)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
}

func init() {
	ResetConfig()
}
