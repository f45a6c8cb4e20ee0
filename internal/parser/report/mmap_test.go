package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverage-analysis/internal/testutil"
	"github.com/coverage-analysis/pkg/errors"
	"github.com/coverage-analysis/pkg/model"
)

func TestOpenMapped(t *testing.T) {
	path := testutil.TempFile(t, "hello\nworld\n")

	mf, err := OpenMapped(path)
	require.NoError(t, err)
	defer mf.Close()

	assert.Equal(t, int64(12), mf.Size())
	assert.Equal(t, "hello\nworld\n", string(mf.Data()))
}

func TestOpenMapped_EmptyFile(t *testing.T) {
	path := testutil.TempFile(t, "")

	mf, err := OpenMapped(path)
	require.NoError(t, err)
	defer mf.Close()

	assert.Equal(t, int64(0), mf.Size())
	assert.Nil(t, mf.Data())
}

func TestOpenMapped_Missing(t *testing.T) {
	_, err := OpenMapped("/no/such/coverage/report.txt")
	require.Error(t, err)
	assert.Equal(t, model.FileNotFound, errors.ResultCode(err))
}

func TestOpenMapped_Directory(t *testing.T) {
	dir := testutil.TempDir(t)
	_, err := OpenMapped(dir)
	assert.Error(t, err)
}

func TestMappedFile_CloseTwice(t *testing.T) {
	path := testutil.TempFile(t, "data\n")
	mf, err := OpenMapped(path)
	require.NoError(t, err)

	assert.NoError(t, mf.Close())
	assert.NoError(t, mf.Close())
}
