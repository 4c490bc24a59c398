package bulksheet

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulkgen/internal/config"
	"bulkgen/internal/generator"
	"bulkgen/internal/logger"
	"bulkgen/internal/sheet"
)

func newService(t *testing.T) *Service {
	cfg := &config.Config{OutputDir: t.TempDir()}
	return New(cfg, logger.NewNop())
}

func TestRunExampleRequest(t *testing.T) {
	svc := newService(t)

	res, check, err := svc.Run(generator.ExampleRequest())
	require.NoError(t, err)
	require.Nil(t, check)

	// 3 keywords x 2 SKUs x 1 match type, ungrouped: 6 units of 4 rows each.
	assert.Equal(t, 6, res.Units)
	assert.Equal(t, 24, res.Rows)
	assert.Equal(t, "xlsx", res.Format)
	assert.Len(t, res.Preview, 5)
	assert.True(t, strings.HasSuffix(res.Path, ".xlsx"))

	_, err = os.Stat(res.Path)
	assert.NoError(t, err)
}

func TestRunCSV(t *testing.T) {
	svc := newService(t)

	req := generator.ExampleRequest()
	req.Format = "csv"

	res, check, err := svc.Run(req)
	require.NoError(t, err)
	require.Nil(t, check)
	assert.True(t, strings.HasSuffix(res.Path, ".csv"))

	_, err = os.Stat(res.Path)
	assert.NoError(t, err)
}

func TestRunValidationFailure(t *testing.T) {
	svc := newService(t)

	req := generator.ExampleRequest()
	req.DailyBudget = "0.50"

	res, check, err := svc.Run(req)
	require.NoError(t, err)
	require.NotNil(t, check)
	assert.Nil(t, res)
	assert.Equal(t, generator.CodeBelowMinimum, check.Code)
}

func TestRunBadStartDate(t *testing.T) {
	svc := newService(t)

	req := generator.ExampleRequest()
	req.StartDate = "not-a-date"

	_, check, err := svc.Run(req)
	require.Error(t, err)
	assert.Nil(t, check)
}

func TestRunUnsupportedFormat(t *testing.T) {
	svc := newService(t)

	req := generator.ExampleRequest()
	req.Format = "pdf"

	_, check, err := svc.Run(req)
	require.Error(t, err)
	assert.Nil(t, check)
	assert.ErrorIs(t, err, sheet.ErrUnsupportedFormat)
}

func TestValidate(t *testing.T) {
	svc := newService(t)

	check, err := svc.Validate(generator.ExampleRequest())
	require.NoError(t, err)
	assert.Nil(t, check)

	req := generator.ExampleRequest()
	req.Keywords = nil
	check, err = svc.Validate(req)
	require.NoError(t, err)
	require.NotNil(t, check)
	assert.Equal(t, generator.CodeEmptyInput, check.Code)
}
