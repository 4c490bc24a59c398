package bulksheet

import (
	"bulkgen/internal/config"
	"bulkgen/internal/generator"
	"bulkgen/internal/logger"
	"bulkgen/internal/models"
	"bulkgen/internal/sheet"
)

// DefaultFormat is used when a request does not pick an export format.
const DefaultFormat = "xlsx"

const previewRows = 5

// Service runs the pipeline from request to written sheet. The synchronous
// API handler and the Kafka worker both go through it.
type Service struct {
	config *config.Config
	logger *logger.Logger
	writer *sheet.Writer
}

// New creates a new bulk sheet service
func New(cfg *config.Config, log *logger.Logger) *Service {
	return &Service{
		config: cfg,
		logger: log,
		writer: sheet.NewWriter(cfg.OutputDir, log),
	}
}

// Result summarizes a completed run.
type Result struct {
	Units   int        `json:"units"`
	Rows    int        `json:"rows"`
	Path    string     `json:"path"`
	Format  string     `json:"format"`
	Preview [][]string `json:"preview"`
}

// settings checks the raw request and converts it. A non-nil Check is the
// first validation failure; error means the request was unreadable.
func (s *Service) settings(req models.GenerateRequest) (models.CampaignSettings, *generator.Check, error) {
	if check := generator.CheckKeywords(req.Keywords); check != nil {
		return models.CampaignSettings{}, check, nil
	}
	if check := generator.CheckSKUs(req.SKUs); check != nil {
		return models.CampaignSettings{}, check, nil
	}
	settings, check, err := generator.SettingsFromRequest(req)
	if err != nil {
		return models.CampaignSettings{}, nil, err
	}
	if check != nil {
		return models.CampaignSettings{}, check, nil
	}
	if check := generator.CheckSettings(settings); check != nil {
		return models.CampaignSettings{}, check, nil
	}
	return settings, nil, nil
}

// Validate runs every input check without generating anything.
func (s *Service) Validate(req models.GenerateRequest) (*generator.Check, error) {
	_, check, err := s.settings(req)
	return check, err
}

// Run validates the request, expands it into rows and writes the sheet.
func (s *Service) Run(req models.GenerateRequest) (*Result, *generator.Check, error) {
	settings, check, err := s.settings(req)
	if err != nil || check != nil {
		return nil, check, err
	}

	rows := generator.Generate(req.Keywords, req.SKUs, settings)
	table := sheet.Assemble(rows)

	format := req.Format
	if format == "" {
		format = DefaultFormat
	}
	path, err := s.writer.Write(table, format)
	if err != nil {
		return nil, nil, err
	}

	result := &Result{
		Units:   generator.CountUnits(rows),
		Rows:    len(table.Rows),
		Path:    path,
		Format:  format,
		Preview: table.Preview(previewRows),
	}
	s.logger.Info("Generated %d rows across %d campaign units: %s", result.Rows, result.Units, path)
	return result, nil, nil
}
