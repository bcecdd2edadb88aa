package env

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

func GetString(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	return val
}

func GetInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	valAsInt, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}

	return valAsInt
}

func GetBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	boolVal, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}

	return boolVal
}

// GetDecimal returns nil when key is unset or not a number.
func GetDecimal(key string) *decimal.Decimal {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return nil
	}

	d, err := decimal.NewFromString(val)
	if err != nil {
		return nil
	}

	return &d
}
