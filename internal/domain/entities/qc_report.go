package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CheckResult is the outcome of a single QC check. The zero value means the
// check was not performed and is serialized as null.
type CheckResult string

const (
	CheckUnset CheckResult = ""
	CheckOK    CheckResult = "ok"
	CheckNotOK CheckResult = "not_ok"
)

var ErrInvalidQCReport = errors.New("invalid qc report")

func (c CheckResult) Valid() bool {
	return c == CheckUnset || c == CheckOK || c == CheckNotOK
}

func (c CheckResult) MarshalJSON() ([]byte, error) {
	if c == CheckUnset {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

func (c *CheckResult) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = CheckUnset
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = CheckResult(s)
	return nil
}

// QCReport is a device inspection captured before and after the repair.
type QCReport struct {
	Display      CheckResult `json:"display"`
	FrontCamera  CheckResult `json:"frontCamera"`
	BackCamera   CheckResult `json:"backCamera"`
	FaceID       CheckResult `json:"faceId"`
	EarSpeaker   CheckResult `json:"earSpeaker"`
	Microphone   CheckResult `json:"microphone"`
	DownSpeaker  CheckResult `json:"downSpeaker"`
	Vibrator     CheckResult `json:"vibrator"`
	VolumeButton CheckResult `json:"volumeButton"`
	PowerButton  CheckResult `json:"powerButton"`
	Charging     CheckResult `json:"charging"`
	IMEI         string      `json:"imei"`
	Model        string      `json:"model"`
	Comments     string      `json:"comments"`
}

// Checks returns every check keyed by its wire name.
func (q QCReport) Checks() map[string]CheckResult {
	return map[string]CheckResult{
		"display":      q.Display,
		"frontCamera":  q.FrontCamera,
		"backCamera":   q.BackCamera,
		"faceId":       q.FaceID,
		"earSpeaker":   q.EarSpeaker,
		"microphone":   q.Microphone,
		"downSpeaker":  q.DownSpeaker,
		"vibrator":     q.Vibrator,
		"volumeButton": q.VolumeButton,
		"powerButton":  q.PowerButton,
		"charging":     q.Charging,
	}
}

func (q QCReport) Validate() error {
	if strings.TrimSpace(q.IMEI) == "" {
		return fmt.Errorf("%w: imei is required", ErrInvalidQCReport)
	}
	if strings.TrimSpace(q.Model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidQCReport)
	}
	for name, c := range q.Checks() {
		if !c.Valid() {
			return fmt.Errorf("%w: %s has invalid value %q", ErrInvalidQCReport, name, string(c))
		}
	}
	return nil
}
