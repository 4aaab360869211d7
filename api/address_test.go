package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	valid := []string{
		testAddress,
		otherTestAddress,
		"oYX5SAz4qz8VKH5f2oKKmrecThiiudobs5",
	}
	for _, address := range valid {
		assert.NoError(t, ValidateAddress(address), address)
	}

	invalid := map[string]string{
		"empty":          "",
		"bad checksum":   "oGxg7S7shs9uSKew1rRn7moRNhYm83jSo8",
		"bitcoin":        "16Jswqk47s9PUcyCc88MMVwzgvHPvtEpf",
		"script hash":    "8FBAbuCvqNCv7H8XeA7s5cQ7KmZGAfFGxa",
		"not base58":     "o0OIl-not-an-address",
		"segwit":         "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		"hex public key": "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
	}
	for name, address := range invalid {
		err := ValidateAddress(address)
		assert.True(t, errors.Is(err, ErrInvalidAddress), name)
	}
}
