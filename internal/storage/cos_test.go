package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverage-analysis/pkg/config"
)

func TestNewCOSStorage_Validation(t *testing.T) {
	t.Run("MissingBucket", func(t *testing.T) {
		_, err := NewCOSStorage(&COSConfig{
			Region:    "ap-guangzhou",
			SecretID:  "test-id",
			SecretKey: "test-key",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "bucket and region are required")
	})

	t.Run("MissingRegion", func(t *testing.T) {
		_, err := NewCOSStorage(&COSConfig{
			Bucket:    "coverage-reports",
			SecretID:  "test-id",
			SecretKey: "test-key",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "bucket and region are required")
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		_, err := NewCOSStorage(&COSConfig{
			Bucket: "coverage-reports",
			Region: "ap-guangzhou",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "credentials are required")
	})

	t.Run("Valid", func(t *testing.T) {
		s, err := NewCOSStorage(&COSConfig{
			Bucket:    "coverage-reports",
			Region:    "ap-guangzhou",
			SecretID:  "test-id",
			SecretKey: "test-key",
		})
		require.NoError(t, err)
		assert.NotNil(t, s)
	})
}

func TestCOSStorage_URL(t *testing.T) {
	s, err := NewCOSStorage(&COSConfig{
		Bucket:    "coverage-reports",
		Region:    "ap-guangzhou",
		SecretID:  "test-id",
		SecretKey: "test-key",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"https://coverage-reports.cos.ap-guangzhou.myqcloud.com/runs/groups.txt",
		s.URL("runs/groups.txt"))
}

func TestNew_COS(t *testing.T) {
	s, err := New(&config.StorageConfig{
		Type:      "cos",
		Bucket:    "coverage-reports",
		Region:    "ap-guangzhou",
		SecretID:  "test-id",
		SecretKey: "test-key",
	})
	require.NoError(t, err)
	_, ok := s.(*COSStorage)
	assert.True(t, ok)
}

func TestValidateConfig_COSMissingBucket(t *testing.T) {
	err := ValidateConfig(&config.StorageConfig{
		Type:   "cos",
		Region: "ap-guangzhou",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "COS bucket is required")
}
