package fefe

import "testing"

func cleanReport() *StatusReport {
	return &StatusReport{
		LeftTarget:     -18,
		TempMax:        10,
		TempMin:        -30,
		BatPercent:     87,
		BatVolInt:      12,
		BatVolDec:      8,
		DeclaredLength: 0x14,
	}
}

func hasAnomaly(errs []ValidationError, typ AnomalyType) bool {
	for _, e := range errs {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestValidateStatus_Clean(t *testing.T) {
	tests := []struct {
		name     string
		declared uint8
		frameLen int
	}{
		// 0x14 reads as payload+checksum on a 24-byte frame
		{"declared 0x14 on 24-byte frame", 0x14, 24},
		// 0x15 reads as bytes-after-length on a 24-byte frame
		{"declared 0x15 on 24-byte frame", 0x15, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cleanReport()
			s.DeclaredLength = tt.declared

			errs := ValidateStatus(s, tt.frameLen)
			if len(errs) != 0 {
				t.Errorf("clean report produced anomalies: %v", errs)
			}
		})
	}
}

func TestValidateStatus_LengthMismatch(t *testing.T) {
	s := cleanReport()
	s.DeclaredLength = 0x03 // outbound-template value in an inbound frame

	errs := ValidateStatus(s, 24)
	if !hasAnomaly(errs, AnomalyLengthMismatch) {
		t.Errorf("declared 0x03 on 24-byte frame not flagged: %v", errs)
	}
}

func TestValidateStatus_InvalidPercent(t *testing.T) {
	s := cleanReport()
	s.BatPercent = 101

	errs := ValidateStatus(s, 24)
	if !hasAnomaly(errs, AnomalyInvalidPercent) {
		t.Errorf("101%% not flagged: %v", errs)
	}

	s.BatPercent = 100
	if hasAnomaly(ValidateStatus(s, 24), AnomalyInvalidPercent) {
		t.Error("100% flagged as invalid")
	}
}

func TestValidateStatus_InvalidTenths(t *testing.T) {
	s := cleanReport()
	s.BatVolDec = 10

	errs := ValidateStatus(s, 24)
	if !hasAnomaly(errs, AnomalyInvalidTenths) {
		t.Errorf("tenths 10 not flagged: %v", errs)
	}

	s.BatVolDec = 9
	if hasAnomaly(ValidateStatus(s, 24), AnomalyInvalidTenths) {
		t.Error("tenths 9 flagged as invalid")
	}
}

func TestValidateStatus_TargetOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		target int8
		want   bool
	}{
		{"below min", -31, true},
		{"above max", 11, true},
		{"at min", -30, false},
		{"at max", 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cleanReport()
			s.LeftTarget = tt.target

			got := hasAnomaly(ValidateStatus(s, 24), AnomalyTargetOutOfRange)
			if got != tt.want {
				t.Errorf("target %d: flagged=%v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestValidateStatus_InvertedRange(t *testing.T) {
	s := cleanReport()
	s.TempMin = 10
	s.TempMax = -30

	errs := ValidateStatus(s, 24)
	if !hasAnomaly(errs, AnomalyInvertedRange) {
		t.Errorf("inverted range not flagged: %v", errs)
	}
	// The target check is meaningless against an inverted range and
	// must not pile a second anomaly on top.
	if hasAnomaly(errs, AnomalyTargetOutOfRange) {
		t.Error("target flagged against an inverted range")
	}
}

func TestValidationError_Error(t *testing.T) {
	s := cleanReport()
	s.BatPercent = 200

	errs := ValidateStatus(s, 24)
	if len(errs) == 0 {
		t.Fatal("expected an anomaly")
	}
	var err error = &errs[0]
	if err.Error() != errs[0].Message {
		t.Errorf("Error() = %q, want %q", err.Error(), errs[0].Message)
	}
}
