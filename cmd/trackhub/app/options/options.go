package options

import (
	"errors"

	"github.com/trackhub-io/trackhub/internal/tracker"
	"github.com/trackhub-io/trackhub/pkg/app"
	"github.com/trackhub-io/trackhub/pkg/log"
	"github.com/trackhub-io/trackhub/pkg/options"
)

// TrackerOptions aggregates every option group of the trackhub binary.
type TrackerOptions struct {
	HTTPOptions *options.HTTPOptions `json:"http" mapstructure:"http"`
	MQTTOptions *options.MQTTOptions `json:"mqtt" mapstructure:"mqtt"`
	S3Options   *options.S3Options   `json:"s3" mapstructure:"s3"`
	Log         *log.Options         `json:"log" mapstructure:"log"`
}

var _ app.Options = (*TrackerOptions)(nil)

// NewTrackerOptions creates the options with defaults.
func NewTrackerOptions() *TrackerOptions {
	return &TrackerOptions{
		HTTPOptions: options.NewHTTPOptions(),
		MQTTOptions: options.NewMQTTOptions(),
		S3Options:   options.NewS3Options(),
		Log:         log.NewOptions(),
	}
}

// Flags implements app.Options.
func (o *TrackerOptions) Flags() *app.NamedFlagSets {
	fss := &app.NamedFlagSets{}
	o.HTTPOptions.AddFlags(fss.FlagSet("http"))
	o.MQTTOptions.AddFlags(fss.FlagSet("mqtt"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

// Complete implements app.Options.
func (o *TrackerOptions) Complete() error {
	return nil
}

// Validate implements app.Options.
func (o *TrackerOptions) Validate() error {
	var errs []error
	errs = append(errs, o.HTTPOptions.Validate()...)
	errs = append(errs, o.MQTTOptions.Validate()...)
	errs = append(errs, o.S3Options.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errors.Join(errs...)
}

// Config converts the resolved options into the tracker configuration.
func (o *TrackerOptions) Config() (*tracker.Config, error) {
	return &tracker.Config{
		HTTPOptions: o.HTTPOptions,
		MQTTOptions: o.MQTTOptions,
		S3Options:   o.S3Options,
	}, nil
}
