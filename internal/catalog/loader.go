package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"golang.org/x/text/language"

	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/logger"
	"github.com/osse101/casevault/internal/utils"
	"github.com/osse101/casevault/internal/validation"
)

// ErrInvalidConfig is returned for catalog files that fail validation
var ErrInvalidConfig = errors.New("invalid catalog configuration")

// Config represents the JSON catalog file
type Config struct {
	Version       string                             `json:"version"`
	Items         []domain.CatalogItem               `json:"items"`
	Localizations map[string]map[string]Localization `json:"localizations,omitempty"`
}

// Localization is the translated text of one item
type Localization struct {
	Name     string `json:"name,omitempty"`
	Desc     string `json:"desc,omitempty"`
	Category string `json:"category,omitempty"`
}

// Loader handles loading and validating the catalog file
type Loader interface {
	Load(path string) (*Config, error)
	Parse(data []byte) (*Config, error)
	Validate(config *Config) error
	Build(config *Config) (*Catalog, *Localizer, error)
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
	structValidator *validator.Validate
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	v := validator.New()
	_ = v.RegisterValidation("item_type", validateItemType)
	_ = v.RegisterValidation("rarity", validateRarity)

	return &catalogLoader{
		schemaValidator: validation.NewSchemaValidator(),
		structValidator: v,
	}
}

// LoadFile runs Load, Validate and Build and logs a summary
func LoadFile(ctx context.Context, loader Loader, path string) (*Catalog, *Localizer, error) {
	cfg, err := loader.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := loader.Validate(cfg); err != nil {
		return nil, nil, err
	}
	cat, loc, err := loader.Build(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCatalogLoaded,
		LogFieldPath, path,
		LogFieldItems, cat.Len(),
		LogFieldContainers, len(cat.Containers()),
		LogFieldLanguages, len(loc.Languages()))

	return cat, loc, nil
}

// Load reads and parses a catalog JSON file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := utils.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	cfg, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates raw catalog bytes against the schema and decodes them
func (l *catalogLoader) Parse(data []byte) (*Config, error) {
	if err := l.schemaValidator.ValidateBytes(data, validation.SchemaCatalog); err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaFailed, validation.SchemaCatalog, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks struct constraints and referential integrity
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	byID := make(map[int]*domain.CatalogItem, len(config.Items))
	for i := range config.Items {
		item := &config.Items[i]
		if err := l.validateItem(item); err != nil {
			return err
		}
		if _, ok := byID[item.ID]; ok {
			return fmt.Errorf(ErrFmtDuplicateID, ErrInvalidConfig, item.ID)
		}
		byID[item.ID] = item
	}

	for i := range config.Items {
		if err := validateReferences(&config.Items[i], byID); err != nil {
			return err
		}
	}

	return validateLocalizations(config.Localizations, byID)
}

// Build constructs the catalog and localizer from a validated config
func (l *catalogLoader) Build(config *Config) (*Catalog, *Localizer, error) {
	cat, err := New(config.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	loc, err := NewLocalizer(cat, config.Localizations)
	if err != nil {
		return nil, nil, err
	}

	return cat, loc, nil
}

func (l *catalogLoader) validateItem(item *domain.CatalogItem) error {
	if err := l.structValidator.Struct(item); err != nil {
		return fmt.Errorf(ErrFmtItemInvalid, ErrInvalidConfig, item.ID, err.Error())
	}

	lo, hi := item.WearBounds()
	if lo > hi {
		return fmt.Errorf(ErrFmtWearBoundsInverted, ErrInvalidConfig, item.ID, lo, hi)
	}

	if item.Type != domain.ItemTypeContainer && (item.Contents != nil || item.Specials != nil) {
		return fmt.Errorf(ErrFmtContentsOnNonBox, ErrInvalidConfig, item.ID, item.Type)
	}

	return nil
}

func validateReferences(item *domain.CatalogItem, byID map[int]*domain.CatalogItem) error {
	for _, id := range item.Contents {
		contained, ok := byID[id]
		if !ok {
			return fmt.Errorf(ErrFmtDanglingReference, ErrInvalidConfig, item.ID, id)
		}
		if !contained.Rarity.Valid() {
			return fmt.Errorf(ErrFmtContainedNoRarity, ErrInvalidConfig, item.ID, id)
		}
	}
	for _, id := range item.Specials {
		if _, ok := byID[id]; !ok {
			return fmt.Errorf(ErrFmtDanglingReference, ErrInvalidConfig, item.ID, id)
		}
	}
	return nil
}

func validateLocalizations(locs map[string]map[string]Localization, byID map[int]*domain.CatalogItem) error {
	for lang, entries := range locs {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf(ErrFmtBadLanguageTag, ErrInvalidConfig, lang, err)
		}
		for key := range entries {
			id, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf(ErrFmtUnknownLocalization, ErrInvalidConfig, lang, key)
			}
			if _, ok := byID[id]; !ok {
				return fmt.Errorf(ErrFmtUnknownLocalization, ErrInvalidConfig, lang, key)
			}
		}
	}
	return nil
}

func validateItemType(fl validator.FieldLevel) bool {
	return domain.ItemType(fl.Field().String()).Valid()
}

func validateRarity(fl validator.FieldLevel) bool {
	return domain.Rarity(fl.Field().String()).Valid()
}
