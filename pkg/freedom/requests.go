package freedom

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ResourceURLer turns a kind and id into the canonical href the API expects
// in payloads. Every API implementation satisfies it.
type ResourceURLer interface {
	ResourceURL(kind Kind, id int) string
}

// AccountPayload creates or updates an account.
type AccountPayload struct {
	Name       string `json:"name,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
}

// BandPayload creates or updates a satellite band.
type BandPayload struct {
	Name                  string          `json:"name,omitempty"`
	Type                  BandType        `json:"type,omitempty"`
	FrequencyMghz         float64         `json:"frequencyMghz,omitempty"`
	DefaultBandWidthMghz  float64         `json:"defaultBandWidthMghz,omitempty"`
	Modulation            *string         `json:"modulation,omitempty"`
	EIRP                  *float64        `json:"eirp,omitempty"`
	Gain                  *float64        `json:"gain,omitempty"`
	IOConfiguration       IOConfiguration `json:"ioConfiguration"`
	Polarization          *Polarization   `json:"polarization,omitempty"`
	ManualTransmitControl bool            `json:"manualTransmitControl"`
}

// SatellitePayload creates or updates a satellite.
type SatellitePayload struct {
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	NoradCatID    int    `json:"noradCatId,omitempty"`
	Configuration string `json:"configuration,omitempty"`
}

// SatelliteConfigurationPayload creates or updates a satellite configuration.
type SatelliteConfigurationPayload struct {
	Name        string   `json:"name,omitempty"`
	Doppler     *bool    `json:"doppler,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	BandDetails []string `json:"bandDetails,omitempty"`
}

// SitePayload updates a site.
type SitePayload struct {
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Location    *Location         `json:"location,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
}

// SiteConfigurationPayload updates a site configuration.
type SiteConfigurationPayload struct {
	Name       string            `json:"name,omitempty"`
	Site       string            `json:"site,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// TaskRequestPayload creates or updates a task request.
type TaskRequestPayload struct {
	Type            TaskType `json:"type,omitempty"`
	Site            string   `json:"site,omitempty"`
	Satellite       string   `json:"satellite,omitempty"`
	Configuration   string   `json:"configuration,omitempty"`
	TargetBands     []string `json:"targetBands,omitempty"`
	TargetDate      string   `json:"targetDate,omitempty"`
	Duration        int64    `json:"duration,omitempty"`
	MinimumDuration *int64   `json:"minimumDuration,omitempty"`
	HoursOfFlex     *int     `json:"hoursOfFlex,omitempty"`
	TestFile        *string  `json:"testFile,omitempty"`
	Override        *string  `json:"override,omitempty"`
}

// TaskPayload updates a task.
type TaskPayload struct {
	Status TaskStatus `json:"status,omitempty"`
}

// UserPayload creates or updates a user. AccountID selects the account the
// user is created under and is not sent.
type UserPayload struct {
	AccountID      int      `json:"-"`
	FirstName      string   `json:"firstName,omitempty"`
	LastName       string   `json:"lastName,omitempty"`
	Email          string   `json:"email,omitempty"`
	MachineService bool     `json:"machineService"`
	Roles          []string `json:"roles"`
}

// OverridePayload creates or updates an override.
type OverridePayload struct {
	Name          string            `json:"name,omitempty"`
	Satellite     string            `json:"satellite,omitempty"`
	Configuration string            `json:"configuration,omitempty"`
	Properties    map[string]string `json:"properties,omitempty"`
}

// TaskRequestOptions describes a task request before it is turned into a payload.
type TaskRequestOptions struct {
	Type TaskType
	// HoursOfFlex is required for BEFORE, AFTER and AROUND requests.
	HoursOfFlex int
	// TestFile is required for TEST requests.
	TestFile string

	TargetTime      time.Time
	Duration        time.Duration
	MinimumDuration time.Duration

	SatelliteID         int
	SiteID              int
	SiteConfigurationID int
	BandIDs             []int
	OverrideID          int
}

// Validate checks the options.
func (o *TaskRequestOptions) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.Type, validation.Required,
			validation.In(TaskTypeExact, TaskTypeBefore, TaskTypeAfter, TaskTypeAround, TaskTypeTest)),
		validation.Field(&o.HoursOfFlex,
			validation.When(o.Type.IsFlex(), validation.Required, validation.Max(255))),
		validation.Field(&o.TestFile, validation.When(o.Type == TaskTypeTest, validation.Required)),
		validation.Field(&o.TargetTime, validation.Required),
		validation.Field(&o.Duration, validation.Required, validation.Min(time.Second)),
		validation.Field(&o.MinimumDuration, validation.Max(o.Duration)),
		validation.Field(&o.SatelliteID, validation.Required),
		validation.Field(&o.SiteID, validation.Required),
		validation.Field(&o.SiteConfigurationID, validation.Required),
		validation.Field(&o.BandIDs, validation.Required, validation.Each(validation.Required)),
	)
}

// Build validates the options and produces the payload.
func (o *TaskRequestOptions) Build(urls ResourceURLer) (*TaskRequestPayload, error) {
	err := o.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: task request: %w", ErrInvalidPayload, err)
	}

	payload := &TaskRequestPayload{
		Type:          o.Type,
		Site:          urls.ResourceURL(KindSite, o.SiteID),
		Satellite:     urls.ResourceURL(KindSatellite, o.SatelliteID),
		Configuration: urls.ResourceURL(KindSiteConfiguration, o.SiteConfigurationID),
		TargetBands:   resourceURLs(urls, KindBand, o.BandIDs),
		TargetDate:    FormatTime(o.TargetTime),
		Duration:      int64(o.Duration / time.Second),
	}

	if o.Type.IsFlex() {
		hours := o.HoursOfFlex
		payload.HoursOfFlex = &hours
	}

	if o.Type == TaskTypeTest {
		testFile := o.TestFile
		payload.TestFile = &testFile
	}

	if o.MinimumDuration > 0 {
		minimum := int64(o.MinimumDuration / time.Second)
		payload.MinimumDuration = &minimum
	}

	if o.OverrideID != 0 {
		override := urls.ResourceURL(KindOverride, o.OverrideID)
		payload.Override = &override
	}

	return payload, nil
}

// SatelliteOptions describes a satellite to create.
type SatelliteOptions struct {
	Name            string
	Description     string
	NoradCatID      int
	ConfigurationID int
}

// Build validates the options and produces the payload.
func (o *SatelliteOptions) Build(urls ResourceURLer) (*SatellitePayload, error) {
	err := validation.ValidateStruct(o,
		validation.Field(&o.Name, validation.Required),
		validation.Field(&o.NoradCatID, validation.Required, validation.Min(1)),
		validation.Field(&o.ConfigurationID, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: satellite: %w", ErrInvalidPayload, err)
	}

	return &SatellitePayload{
		Name:          o.Name,
		Description:   o.Description,
		NoradCatID:    o.NoradCatID,
		Configuration: urls.ResourceURL(KindSatelliteConfiguration, o.ConfigurationID),
	}, nil
}

// BandOptions describes a band to create.
type BandOptions struct {
	Name                  string
	Type                  BandType
	FrequencyMghz         float64
	DefaultBandWidthMghz  float64
	IOHardware            IOHardware
	Polarization          Polarization
	Modulation            string
	EIRP                  *float64
	Gain                  *float64
	ManualTransmitControl bool
}

// Build validates the options and produces the payload.
func (o *BandOptions) Build() (*BandPayload, error) {
	err := validation.ValidateStruct(o,
		validation.Field(&o.Name, validation.Required),
		validation.Field(&o.Type, validation.Required, validation.In(BandTypeTransmit, BandTypeReceive)),
		validation.Field(&o.FrequencyMghz, validation.Required, validation.Min(0.0)),
		validation.Field(&o.DefaultBandWidthMghz, validation.Required, validation.Min(0.0)),
		validation.Field(&o.IOHardware, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: band: %w", ErrInvalidPayload, err)
	}

	hardware := o.IOHardware
	payload := &BandPayload{
		Name:                  o.Name,
		Type:                  o.Type,
		FrequencyMghz:         o.FrequencyMghz,
		DefaultBandWidthMghz:  o.DefaultBandWidthMghz,
		EIRP:                  o.EIRP,
		Gain:                  o.Gain,
		IOConfiguration:       IOConfiguration{IOHardware: &hardware},
		ManualTransmitControl: o.ManualTransmitControl,
	}

	if o.Modulation != "" {
		modulation := o.Modulation
		payload.Modulation = &modulation
	}

	if o.Polarization != "" {
		polarization := o.Polarization
		payload.Polarization = &polarization
	}

	return payload, nil
}

// SatelliteConfigurationOptions describes a satellite configuration to create.
type SatelliteConfigurationOptions struct {
	Name    string
	BandIDs []int
	Doppler *bool
	Notes   string
}

// Build validates the options and produces the payload.
func (o *SatelliteConfigurationOptions) Build(urls ResourceURLer) (*SatelliteConfigurationPayload, error) {
	err := validation.ValidateStruct(o,
		validation.Field(&o.Name, validation.Required),
		validation.Field(&o.BandIDs, validation.Required, validation.Each(validation.Required)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: satellite configuration: %w", ErrInvalidPayload, err)
	}

	payload := &SatelliteConfigurationPayload{
		Name:        o.Name,
		Doppler:     o.Doppler,
		BandDetails: resourceURLs(urls, KindBand, o.BandIDs),
	}

	if o.Notes != "" {
		notes := o.Notes
		payload.Notes = &notes
	}

	return payload, nil
}

// UserOptions describes a user to create.
type UserOptions struct {
	AccountID      int
	FirstName      string
	LastName       string
	Email          string
	MachineService bool
	Roles          []string
}

// Build validates the options and produces the payload.
func (o *UserOptions) Build() (*UserPayload, error) {
	err := validation.ValidateStruct(o,
		validation.Field(&o.AccountID, validation.Required),
		validation.Field(&o.FirstName, validation.Required),
		validation.Field(&o.LastName, validation.Required),
		validation.Field(&o.Email, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: user: %w", ErrInvalidPayload, err)
	}

	roles := o.Roles
	if roles == nil {
		roles = []string{}
	}

	return &UserPayload{
		AccountID:      o.AccountID,
		FirstName:      o.FirstName,
		LastName:       o.LastName,
		Email:          o.Email,
		MachineService: o.MachineService,
		Roles:          roles,
	}, nil
}

// OverrideOptions describes an override to create.
type OverrideOptions struct {
	Name            string
	SatelliteID     int
	ConfigurationID int
	Properties      map[string]string
}

// Build validates the options and produces the payload.
func (o *OverrideOptions) Build(urls ResourceURLer) (*OverridePayload, error) {
	err := validation.ValidateStruct(o,
		validation.Field(&o.Name, validation.Required),
		validation.Field(&o.SatelliteID, validation.Required),
		validation.Field(&o.ConfigurationID, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: override: %w", ErrInvalidPayload, err)
	}

	properties := o.Properties
	if properties == nil {
		properties = map[string]string{}
	}

	return &OverridePayload{
		Name:          o.Name,
		Satellite:     urls.ResourceURL(KindSatellite, o.SatelliteID),
		Configuration: urls.ResourceURL(KindSatelliteConfiguration, o.ConfigurationID),
		Properties:    properties,
	}, nil
}

func resourceURLs(urls ResourceURLer, kind Kind, ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, urls.ResourceURL(kind, id))
	}

	return out
}
