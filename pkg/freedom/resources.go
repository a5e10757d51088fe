package freedom

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Account represents an organisation registered with Freedom.
type Account struct {
	Resource

	Name       string     `json:"name"                 yaml:"name"`
	ExternalID string     `json:"externalId,omitempty" yaml:"external_id,omitempty"`
	Verified   bool       `json:"verified"             yaml:"verified"`
	Created    *time.Time `json:"created,omitempty"    yaml:"created,omitempty"`
	Modified   *time.Time `json:"modified,omitempty"   yaml:"modified,omitempty"`
}

// Validate checks the decoded account.
func (a *Account) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Name, validation.Required),
	)
}

// BandType is the direction of a band.
type BandType string

const (
	BandTypeTransmit BandType = "TRANSMIT"
	BandTypeReceive  BandType = "RECEIVE"
)

// IOHardware names the hardware a band's data is routed through.
type IOHardware string

const (
	IOHardwareModem            IOHardware = "MODEM"
	IOHardwareSpectralAnalyzer IOHardware = "SPECTRAL_ANALYZER"
	IOHardwareDigitizer        IOHardware = "DIGITIZER"
	IOHardwareFEP              IOHardware = "FEP"
)

// Polarization of a band.
type Polarization string

const (
	PolarizationRightHandCircular Polarization = "RIGHT_HAND_CIRCULAR"
	PolarizationLeftHandCircular  Polarization = "LEFT_HAND_CIRCULAR"
	PolarizationVertical          Polarization = "VERTICAL"
	PolarizationHorizontal        Polarization = "HORIZONTAL"
)

// IOConfiguration describes framing of band data.
type IOConfiguration struct {
	StartHexPattern *string     `json:"startHexPattern,omitempty" yaml:"start_hex_pattern,omitempty"`
	EndHexPattern   *string     `json:"endHexPattern,omitempty"   yaml:"end_hex_pattern,omitempty"`
	StripPattern    bool        `json:"stripPattern"              yaml:"strip_pattern"`
	IOHardware      *IOHardware `json:"ioHardware,omitempty"      yaml:"io_hardware,omitempty"`
}

// Band represents a satellite band.
type Band struct {
	Resource

	Name                  string          `json:"name"                   yaml:"name"`
	Type                  BandType        `json:"type"                   yaml:"type"`
	FrequencyMghz         float64         `json:"frequencyMghz"          yaml:"frequency_mghz"`
	DefaultBandWidthMghz  float64         `json:"defaultBandWidthMghz"   yaml:"default_band_width_mghz"`
	Modulation            *string         `json:"modulation,omitempty"   yaml:"modulation,omitempty"`
	EIRP                  *float64        `json:"eirp,omitempty"         yaml:"eirp,omitempty"`
	Gain                  *float64        `json:"gain,omitempty"         yaml:"gain,omitempty"`
	IOConfiguration       IOConfiguration `json:"ioConfiguration"        yaml:"io_configuration"`
	Polarization          *Polarization   `json:"polarization,omitempty" yaml:"polarization,omitempty"`
	ManualTransmitControl bool            `json:"manualTransmitControl"  yaml:"manual_transmit_control"`
	Created               *time.Time      `json:"created,omitempty"      yaml:"created,omitempty"`
	Modified              *time.Time      `json:"modified,omitempty"     yaml:"modified,omitempty"`
}

// Validate checks the decoded band.
func (b *Band) Validate() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.Type, validation.In(BandTypeTransmit, BandTypeReceive)),
	)
}

// Satellite represents a satellite registered with an account.
type Satellite struct {
	Resource

	Name        string     `json:"name"                  yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	NoradCatID  int        `json:"noradCatId"            yaml:"norad_cat_id"`
	Created     *time.Time `json:"created,omitempty"     yaml:"created,omitempty"`
	Modified    *time.Time `json:"modified,omitempty"    yaml:"modified,omitempty"`
}

// Validate checks the decoded satellite.
func (s *Satellite) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.NoradCatID, validation.Min(0)),
	)
}

// SatelliteConfiguration groups the bands a satellite can use.
type SatelliteConfiguration struct {
	Resource

	Name     string     `json:"name"               yaml:"name"`
	Doppler  *bool      `json:"doppler,omitempty"  yaml:"doppler,omitempty"`
	Notes    *string    `json:"notes,omitempty"    yaml:"notes,omitempty"`
	Created  *time.Time `json:"created,omitempty"  yaml:"created,omitempty"`
	Modified *time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// Validate checks the decoded configuration.
func (s *SatelliteConfiguration) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required),
	)
}

// Location is a site's position.
type Location struct {
	Latitude  float64 `json:"latitude"  yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Elevation float64 `json:"elevation" yaml:"elevation"`
}

// Validate checks coordinate ranges.
func (l Location) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&l.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// Site represents a ground station.
type Site struct {
	Resource

	Name        string            `json:"name"                  yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	BaseFPSPort int               `json:"baseFpsPort,omitempty" yaml:"base_fps_port,omitempty"`
	Location    *Location         `json:"location,omitempty"    yaml:"location,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"  yaml:"properties,omitempty"`
	Created     *time.Time        `json:"created,omitempty"     yaml:"created,omitempty"`
	Modified    *time.Time        `json:"modified,omitempty"    yaml:"modified,omitempty"`
}

// Validate checks the decoded site.
func (s *Site) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Location),
	)
}

// SiteConfiguration is one hardware configuration of a site.
type SiteConfiguration struct {
	Resource

	Name       string            `json:"name"                 yaml:"name"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	Created    *time.Time        `json:"created,omitempty"    yaml:"created,omitempty"`
	Modified   *time.Time        `json:"modified,omitempty"   yaml:"modified,omitempty"`
}

// Validate checks the decoded configuration.
func (s *SiteConfiguration) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required),
	)
}

// TaskType is the scheduling flexibility of a task request.
type TaskType string

const (
	TaskTypeExact  TaskType = "EXACT"
	TaskTypeBefore TaskType = "BEFORE"
	TaskTypeAfter  TaskType = "AFTER"
	TaskTypeAround TaskType = "AROUND"
	TaskTypeTest   TaskType = "TEST"
)

// IsFlex reports whether the type allows the scheduler to move the pass.
func (t TaskType) IsFlex() bool {
	return t == TaskTypeBefore || t == TaskTypeAfter || t == TaskTypeAround
}

// TaskStatus is the lifecycle state of a task request or task.
type TaskStatus string

const (
	TaskStatusRequested TaskStatus = "REQUESTED"
	TaskStatusApproved  TaskStatus = "APPROVED"
	TaskStatusScheduled TaskStatus = "SCHEDULED"
	TaskStatusRejected  TaskStatus = "REJECTED"
	TaskStatusCancelled TaskStatus = "CANCELLED"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusFailed    TaskStatus = "FAILED"
)

// TaskRequest asks Freedom to schedule a pass.
type TaskRequest struct {
	Resource

	Type            TaskType   `json:"type"                      yaml:"type"`
	Status          TaskStatus `json:"status,omitempty"          yaml:"status,omitempty"`
	TargetDate      time.Time  `json:"targetDate"                yaml:"target_date"`
	Duration        int64      `json:"duration"                  yaml:"duration"`
	MinimumDuration *int64     `json:"minimumDuration,omitempty" yaml:"minimum_duration,omitempty"`
	HoursOfFlex     *int       `json:"hoursOfFlex,omitempty"     yaml:"hours_of_flex,omitempty"`
	TestFile        *string    `json:"testFile,omitempty"        yaml:"test_file,omitempty"`
	Created         *time.Time `json:"created,omitempty"         yaml:"created,omitempty"`
	Modified        *time.Time `json:"modified,omitempty"        yaml:"modified,omitempty"`
}

// Validate checks the decoded request.
func (r *TaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Type, validation.Required,
			validation.In(TaskTypeExact, TaskTypeBefore, TaskTypeAfter, TaskTypeAround, TaskTypeTest)),
		validation.Field(&r.Duration, validation.Min(int64(0))),
	)
}

// TargetDuration returns Duration as a time.Duration.
func (r *TaskRequest) TargetDuration() time.Duration {
	return time.Duration(r.Duration) * time.Second
}

// Task is a scheduled pass produced from a task request.
type Task struct {
	Resource

	Type     TaskType   `json:"type,omitempty"     yaml:"type,omitempty"`
	Status   TaskStatus `json:"status,omitempty"   yaml:"status,omitempty"`
	Start    time.Time  `json:"start"              yaml:"start"`
	End      time.Time  `json:"end"                yaml:"end"`
	Files    []string   `json:"files,omitempty"    yaml:"files,omitempty"`
	Created  *time.Time `json:"created,omitempty"  yaml:"created,omitempty"`
	Modified *time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// Validate checks the decoded task.
func (t *Task) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Start, validation.Required),
		validation.Field(&t.End, validation.Required, validation.By(notBefore(t.Start))),
	)
}

func notBefore(start time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		end, _ := value.(time.Time)
		if end.Before(start) {
			return validation.NewError("validation_end_before_start", "must not be before start")
		}

		return nil
	}
}

// AzEl is the antenna pointing track of a task.
type AzEl struct {
	Resource

	Location *Location   `json:"location,omitempty" yaml:"location,omitempty"`
	Points   []AzElPoint `json:"points"             yaml:"points"`
}

// AzElPoint is one pointing sample.
type AzElPoint struct {
	Time      time.Time `json:"time"      yaml:"time"`
	Azimuth   float64   `json:"azimuth"   yaml:"azimuth"`
	Elevation float64   `json:"elevation" yaml:"elevation"`
}

// Validate checks the track's location.
func (a *AzEl) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Location),
	)
}

// TaskBundle is everything an FPS needs to run one task.
type TaskBundle struct {
	Task              Task               `json:"task"                        yaml:"task"`
	Satellite         *Satellite         `json:"satellite,omitempty"         yaml:"satellite,omitempty"`
	SiteConfiguration *SiteConfiguration `json:"siteConfiguration,omitempty" yaml:"site_configuration,omitempty"`
	Bands             []Band             `json:"bands,omitempty"             yaml:"bands,omitempty"`
}

// User is an account member.
type User struct {
	Resource

	FirstName      string     `json:"firstName"          yaml:"first_name"`
	LastName       string     `json:"lastName"           yaml:"last_name"`
	Email          string     `json:"email"              yaml:"email"`
	MachineService bool       `json:"machineService"     yaml:"machine_service"`
	Roles          []string   `json:"roles,omitempty"    yaml:"roles,omitempty"`
	Created        *time.Time `json:"created,omitempty"  yaml:"created,omitempty"`
	Modified       *time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// Validate checks the decoded user.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Email, validation.Required),
	)
}

// Override replaces configuration properties for a satellite.
type Override struct {
	Resource

	Name       string            `json:"name"                 yaml:"name"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	Created    *time.Time        `json:"created,omitempty"    yaml:"created,omitempty"`
	Modified   *time.Time        `json:"modified,omitempty"   yaml:"modified,omitempty"`
}

// Validate checks the decoded override.
func (o *Override) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.Name, validation.Required),
	)
}

// GatewayLicense is a Freedom Gateway license.
type GatewayLicense struct {
	ID         int        `json:"id"                   yaml:"id"`
	Name       string     `json:"name,omitempty"       yaml:"name,omitempty"`
	LicenseKey string     `json:"licenseKey"           yaml:"license_key"`
	AccountID  int        `json:"accountId,omitempty"  yaml:"account_id,omitempty"`
	Expiration *time.Time `json:"expiration,omitempty" yaml:"expiration,omitempty"`
}

// GatewayLicenseVerification is the result of a license check.
type GatewayLicenseVerification struct {
	Valid      bool       `json:"valid"                yaml:"valid"`
	Message    string     `json:"message,omitempty"    yaml:"message,omitempty"`
	Expiration *time.Time `json:"expiration,omitempty" yaml:"expiration,omitempty"`
}

// Validatable is implemented by every resource record.
type Validatable interface {
	Validate() error
}
