// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storytime/internal/platform/config"
)

/*
TestLoad_Defaults verifies that only SESSION_SECRET is needed for a static setup.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.SourceStatic, cfg.ContentSource)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.NarrationEnabled)
}

/*
TestLoad_MissingSecret verifies the required tag is enforced.
*/
func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoad_SourceRequirements checks cross-field validation per content source.
*/
func TestLoad_SourceRequirements(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		isValid bool
	}{
		{"cms_without_project", map[string]string{"CONTENT_SOURCE": "cms"}, false},
		{"cms_with_project", map[string]string{"CONTENT_SOURCE": "cms", "CMS_PROJECT_ID": "abc123"}, true},
		{"postgres_without_dsn", map[string]string{"CONTENT_SOURCE": "postgres"}, false},
		{"postgres_with_dsn", map[string]string{"CONTENT_SOURCE": "postgres", "DATABASE_URL": "postgres://localhost/storytime"}, true},
		{"unknown_source", map[string]string{"CONTENT_SOURCE": "ftp"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "test-secret")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestConfig_CMSEndpoint verifies the query URL layout.
*/
func TestConfig_CMSEndpoint(t *testing.T) {
	cfg := &config.Config{CMSProjectID: "abc123", CMSAPIVersion: "2024-01-01", CMSDataset: "production"}
	assert.Equal(t, "https://abc123.api.sanity.io/v2024-01-01/data/query/production", cfg.CMSEndpoint())

	cfg.CMSBaseURL = "http://localhost:9999/"
	assert.Equal(t, "http://localhost:9999/v2024-01-01/data/query/production", cfg.CMSEndpoint())
}

/*
TestConfig_AllowedOrigins verifies the site origin leads the trimmed extra origins.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &config.Config{SiteBaseURL: "https://stories.example/", ExtraOrigins: " https://a.example , ,https://b.example"}
	assert.Equal(t, []string{"https://stories.example", "https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}
