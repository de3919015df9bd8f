package domain

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_field_service.go -package mocks github.com/altocrm/altocrm/internal/domain FieldService
//go:generate mockgen -destination mocks/mock_field_repository.go -package mocks github.com/altocrm/altocrm/internal/domain FieldRepository

// FieldKind determines how a field's values are validated and rendered
type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindNumber FieldKind = "number"
	FieldKindDate   FieldKind = "date"
	FieldKindEmail  FieldKind = "email"
	FieldKindPhone  FieldKind = "phone"
	FieldKindURL    FieldKind = "url"
	FieldKindSelect FieldKind = "select"
)

// ValidFieldKinds lists the accepted field kinds
var ValidFieldKinds = []FieldKind{
	FieldKindText, FieldKindNumber, FieldKindDate,
	FieldKindEmail, FieldKindPhone, FieldKindURL, FieldKindSelect,
}

// IsValidFieldKind returns whether the given kind is accepted
func IsValidFieldKind(kind FieldKind) bool {
	for _, k := range ValidFieldKinds {
		if k == kind {
			return true
		}
	}
	return false
}

var fieldKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// DateValueLayout is the storage format for date-kind values
const DateValueLayout = "2006-01-02"

// Seeded default field keys. The enrichment rules build on these.
const (
	FieldKeyName      = "name"
	FieldKeyFirstName = "first_name"
	FieldKeyLastName  = "last_name"
	FieldKeyEmail     = "email"
	FieldKeyPhone     = "phone"
	FieldKeyCompany   = "company"
	FieldKeyTitle     = "title"
	FieldKeyWebsite   = "website"
	FieldKeyNotes     = "notes"
)

// Field is the metadata record describing one lead attribute. Archived
// fields keep their historical values but reject new writes.
type Field struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	Kind       FieldKind  `json:"kind"`
	Options    []string   `json:"options,omitempty"`
	Required   bool       `json:"required"`
	Position   int        `json:"position"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsArchived returns whether the field is archived
func (f *Field) IsArchived() bool {
	return f.ArchivedAt != nil
}

// ValidateValue checks a decoded JSON value against the field kind.
// A nil value is always accepted; required-ness is enforced at import
// time, not per write.
func (f *Field) ValidateValue(value interface{}) error {
	if value == nil {
		return nil
	}

	switch f.Kind {
	case FieldKindNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("field %s expects a number", f.Key)
		}
	case FieldKindText, FieldKindPhone:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("field %s expects a string", f.Key)
		}
	case FieldKindEmail:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %s expects a string", f.Key)
		}
		if !govalidator.IsEmail(s) {
			return fmt.Errorf("field %s expects a valid email", f.Key)
		}
	case FieldKindURL:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %s expects a string", f.Key)
		}
		if !govalidator.IsURL(s) {
			return fmt.Errorf("field %s expects a valid url", f.Key)
		}
	case FieldKindDate:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %s expects a string", f.Key)
		}
		if _, err := time.Parse(DateValueLayout, s); err != nil {
			return fmt.Errorf("field %s expects a date in %s format", f.Key, DateValueLayout)
		}
	case FieldKindSelect:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %s expects a string", f.Key)
		}
		for _, opt := range f.Options {
			if opt == s {
				return nil
			}
		}
		return fmt.Errorf("field %s expects one of: %s", f.Key, strings.Join(f.Options, ", "))
	}

	return nil
}

// CoerceString converts a CSV cell into the field's value type and
// validates it. Empty cells become nil.
func (f *Field) CoerceString(s string) (interface{}, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var value interface{}
	if f.Kind == FieldKindNumber {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("field %s expects a number", f.Key)
		}
		value = n
	} else {
		value = s
	}

	if err := f.ValidateValue(value); err != nil {
		return nil, err
	}
	return value, nil
}

// CreateFieldRequest defines the request to create a field
type CreateFieldRequest struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Position int      `json:"position"`
}

// Validate validates the request and builds the field
func (r *CreateFieldRequest) Validate() (*Field, error) {
	if r.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if !fieldKeyRegex.MatchString(r.Key) {
		return nil, fmt.Errorf("key must be snake_case starting with a letter")
	}
	if len(r.Key) > 64 {
		return nil, fmt.Errorf("key cannot exceed 64 characters")
	}
	if r.Key == "id" || r.Key == "stage" {
		return nil, fmt.Errorf("key %s is reserved", r.Key)
	}

	if r.Label == "" {
		return nil, fmt.Errorf("label is required")
	}

	kind := FieldKind(r.Kind)
	if !IsValidFieldKind(kind) {
		return nil, fmt.Errorf("invalid kind: %s", r.Kind)
	}
	if kind == FieldKindSelect && len(r.Options) == 0 {
		return nil, fmt.Errorf("select fields require options")
	}

	now := time.Now().UTC()
	return &Field{
		Key:       r.Key,
		Label:     r.Label,
		Kind:      kind,
		Options:   r.Options,
		Required:  r.Required,
		Position:  r.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateFieldRequest defines the request to update a field. Key and kind
// are immutable once values exist under them.
type UpdateFieldRequest struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Position int      `json:"position"`
}

// Validate validates the request
func (r *UpdateFieldRequest) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("key is required")
	}
	if r.Label == "" {
		return fmt.Errorf("label is required")
	}
	return nil
}

// ArchiveFieldRequest defines the request to archive a field
type ArchiveFieldRequest struct {
	Key string `json:"key"`
}

// Validate validates the request
func (r *ArchiveFieldRequest) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("key is required")
	}
	return nil
}

// ListFieldsRequest is used to extract query parameters for listing fields
type ListFieldsRequest struct {
	IncludeArchived bool `json:"include_archived,omitempty"`
}

// FromQueryParams parses URL query parameters into the request
func (r *ListFieldsRequest) FromQueryParams(values url.Values) error {
	r.IncludeArchived = values.Get("include_archived") == "true"
	return nil
}

// FieldService provides operations for managing field metadata
type FieldService interface {
	// ListFields returns fields in position order
	ListFields(ctx context.Context, includeArchived bool) ([]*Field, error)

	// GetActiveFields returns non-archived fields keyed by field key
	GetActiveFields(ctx context.Context) (map[string]*Field, error)

	// CreateField creates a new field
	CreateField(ctx context.Context, req *CreateFieldRequest) (*Field, error)

	// UpdateField updates label, options, required and position
	UpdateField(ctx context.Context, req *UpdateFieldRequest) (*Field, error)

	// ArchiveField soft-archives a field
	ArchiveField(ctx context.Context, key string) error
}

// FieldRepository defines methods for field persistence
type FieldRepository interface {
	// List returns fields in position order
	List(ctx context.Context, includeArchived bool) ([]*Field, error)

	// Get retrieves a field by key
	Get(ctx context.Context, key string) (*Field, error)

	// Create inserts a new field
	Create(ctx context.Context, field *Field) error

	// Update updates an existing field
	Update(ctx context.Context, field *Field) error

	// Archive marks a field archived
	Archive(ctx context.Context, key string, archivedAt time.Time) error
}

// ErrFieldNotFound is returned when a field is not found
type ErrFieldNotFound struct {
	Message string
}

func (e *ErrFieldNotFound) Error() string {
	return e.Message
}
