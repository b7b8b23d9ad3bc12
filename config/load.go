package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const envPrefix = "CHAINSTAMP"

var (
	ErrConfigFailedToSetDefaults = errors.New("error occurred while setting defaults")
	ErrConfigPath                = errors.New("config path error")
	ErrConfigInvalid             = errors.New("invalid config")
)

// Load builds the configuration from the defaults, the first config.yaml
// found in configFileDirs and CHAINSTAMP_ prefixed environment variables, in
// increasing order of precedence.
func Load(configFileDirs ...string) (*ChainstampConfig, error) {
	v, err := newViper(configFileDirs...)
	if err != nil {
		return nil, err
	}

	cfg := &ChainstampConfig{}
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func newViper(configFileDirs ...string) (*viper.Viper, error) {
	v := viper.New()

	err := setDefaults(v, "", getDefaultChainstampConfig())
	if err != nil {
		return nil, err
	}

	err = overrideWithFiles(v, configFileDirs...)
	if err != nil {
		return nil, err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setDefaults registers every leaf of defaults as its own dotted key, so that
// environment variables can override nested values.
func setDefaults(v *viper.Viper, prefix string, defaults any) error {
	defaultsMap := make(map[string]any)

	if err := mapstructure.Decode(defaults, &defaultsMap); err != nil {
		return errors.Join(ErrConfigFailedToSetDefaults, err)
	}

	for key, value := range defaultsMap {
		if prefix != "" {
			key = prefix + "." + key
		}

		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Ptr && !rv.IsNil() {
			rv = rv.Elem()
		}

		if rv.Kind() == reflect.Struct {
			err := setDefaults(v, key, rv.Interface())
			if err != nil {
				return err
			}
			continue
		}

		if nested, ok := value.(map[string]any); ok {
			err := setDefaults(v, key, nested)
			if err != nil {
				return err
			}
			continue
		}

		v.SetDefault(key, value)
	}

	return nil
}

func overrideWithFiles(v *viper.Viper, configFileDirs ...string) error {
	if len(configFileDirs) == 0 || configFileDirs[0] == "" {
		return nil
	}

	for _, path := range configFileDirs {
		stat, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Join(ErrConfigPath, fmt.Errorf("path: %s does not exist", path))
			}
			return err
		}
		if !stat.IsDir() {
			return errors.Join(ErrConfigPath, fmt.Errorf("path: %s should be a directory", path))
		}

		v.AddConfigPath(path)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	err := v.ReadInConfig()
	if err != nil {
		return err
	}

	return nil
}

func (c *ChainstampConfig) Validate() error {
	if c.Environment != EnvironmentDevelopment && c.Environment != EnvironmentProduction {
		return errors.Join(ErrConfigInvalid, fmt.Errorf("environment must be %s or %s, got %q", EnvironmentDevelopment, EnvironmentProduction, c.Environment))
	}

	if c.Cache == nil || (c.Cache.Engine != InMemory && c.Cache.Engine != Redis) {
		return errors.Join(ErrConfigInvalid, fmt.Errorf("cache.engine must be %s or %s", InMemory, Redis))
	}

	if c.API == nil || c.Chain == nil || c.Webhook == nil {
		return errors.Join(ErrConfigInvalid, errors.New("api, chain and webhook sections are required"))
	}

	if c.IsProduction() && len(c.API.APIKeys) == 0 {
		return errors.Join(ErrConfigInvalid, errors.New("api.apiKeys must not be empty in production"))
	}

	if c.Chain.ReceiverAddress != "" && !common.IsHexAddress(c.Chain.ReceiverAddress) {
		return errors.Join(ErrConfigInvalid, fmt.Errorf("chain.receiverAddress %q is not an address", c.Chain.ReceiverAddress))
	}

	if _, err := c.Chain.GasPriceWei(); err != nil {
		return errors.Join(ErrConfigInvalid, err)
	}

	return nil
}

// GasPriceWei returns the configured gas price, nil when it should be taken from the network.
func (c *ChainConfig) GasPriceWei() (*big.Int, error) {
	if c.GasPrice == "" {
		return nil, nil
	}

	gasPrice, ok := new(big.Int).SetString(c.GasPrice, 10)
	if !ok || gasPrice.Sign() <= 0 {
		return nil, fmt.Errorf("chain.gasPrice %q is not a positive integer amount of wei", c.GasPrice)
	}

	return gasPrice, nil
}
