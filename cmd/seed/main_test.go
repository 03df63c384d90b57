package main

import (
	"bytes"
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	opts, err := parseFlags([]string{"-email", "shop@mail.com", "-password", "s3cret-pass", "-name", "Barbearia"}, &out)
	require.NoError(t, err)
	assert.Equal(t, options{email: "shop@mail.com", password: "s3cret-pass", name: "Barbearia"}, opts)
	assert.Empty(t, out.String())

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no flags", nil, errUsage},
		{"missing password", []string{"-email", "shop@mail.com"}, errUsage},
		{"missing email", []string{"-password", "s3cret-pass"}, errUsage},
		{"help", []string{"-h"}, flag.ErrHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := parseFlags(tt.args, &out)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, out.String(), "-email")
		})
	}

	_, err = parseFlags([]string{"-unknown"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunRequiresDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("DB_DSN", "")

	err := run(context.Background(), []string{"-email", "shop@mail.com", "-password", "s3cret-pass"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, errNoDSN)
}

func TestRunReportsConfigErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	err := run(context.Background(), []string{"-email", "shop@mail.com", "-password", "s3cret-pass"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
