package vasicek

import (
	"testing"

	"github.com/peter-kozarec/shortrate/pkg/common"
)

func TestParameters_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Parameters
		wantErr bool
	}{
		{name: "valid stationary", params: Parameters{Alpha: 0.01, Beta: 0.9, ProcessVar: 0.01, ObservationVar: 0.01}},
		{name: "valid non-stationary", params: Parameters{Alpha: 0.01, Beta: 1.2, ProcessVar: 0.01, ObservationVar: 0.01}},
		{name: "zero process variance", params: Parameters{Beta: 0.5, ProcessVar: 0, ObservationVar: 0.01}, wantErr: true},
		{name: "negative observation variance", params: Parameters{Beta: 0.5, ProcessVar: 0.01, ObservationVar: -0.01}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParameters_IsStationary(t *testing.T) {
	if !(Parameters{Beta: 0.99}).IsStationary() {
		t.Error("beta just below one is stationary")
	}
	if (Parameters{Beta: 1.0}).IsStationary() {
		t.Error("beta of one is not stationary")
	}
	if (Parameters{Beta: -0.1}).IsStationary() {
		t.Error("negative beta is flagged as non-stationary persistence")
	}
}

func TestParameters_VasicekRoundTrip(t *testing.T) {
	const dt = 1.0 / 252
	v := common.VasicekParameters{Kappa: 3.0, Theta: 0.5, Sigma: 0.5}

	p := FromVasicek(v, dt, 0.01)
	back := p.Vasicek(dt)

	assertClose(t, v.Kappa, back.Kappa, 1e-9, "kappa")
	assertClose(t, v.Theta, back.Theta, 1e-9, "theta")
	assertClose(t, v.Sigma, back.Sigma, 1e-9, "sigma")
}

func TestParameters_StationaryVariance(t *testing.T) {
	p := Parameters{Beta: 0.9, ProcessVar: 0.019}
	v, ok := p.StationaryVariance()
	if !ok {
		t.Fatal("stationary process must have a stationary variance")
	}
	assertClose(t, 0.1, v, 1e-12, "stationary variance")

	if _, ok := (Parameters{Beta: 1.0, ProcessVar: 0.01}).StationaryVariance(); ok {
		t.Error("non-stationary process must not report a stationary variance")
	}
}
