package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sprite-ai/callguard/internal/model"
	"github.com/sprite-ai/callguard/internal/signal"
)

func TestAssessScenarioText(t *testing.T) {
	a := Assess(signal.Default(), nil, "เขาเร่งด่วนมาก ห้ามโทรกลับ และให้โอนเงินทันที")

	assert.Equal(t, []string{signal.Urgent, signal.Transfer, signal.NoCallback}, a.Detected)
	assert.Equal(t, a.Detected, a.Applied)
	assert.Equal(t, 7, a.Score)
	assert.Equal(t, model.RiskRed, a.Level)
	assert.True(t, a.Urgent())
	assert.Equal(t, []string{"เร่งด่วน", "ขอโอนเงิน", "ห้ามโทรกลับ"}, a.Reasons)
}

func TestAssessOTPOnly(t *testing.T) {
	a := Assess(signal.Default(), []string{signal.OTP}, "")

	assert.Empty(t, a.Detected)
	assert.Equal(t, 3, a.Score)
	assert.Equal(t, model.RiskYellow, a.Level)
	assert.Equal(t, []string{"ขอ OTP/รหัส"}, a.Reasons)
}

func TestAssessNothing(t *testing.T) {
	a := Assess(signal.Default(), nil, "   ")

	assert.Empty(t, a.Applied)
	assert.Zero(t, a.Score)
	assert.Equal(t, model.RiskGreen, a.Level)
	assert.Equal(t, []string{NoSignalReason}, a.Reasons)
	assert.Equal(t, []Action{ActionContinue}, a.Actions())
}

func TestNoCallbackForcesRed(t *testing.T) {
	// weight 3 alone would only be yellow
	a := Assess(signal.Default(), []string{signal.NoCallback}, "")
	assert.Equal(t, 3, a.Score)
	assert.Equal(t, model.RiskRed, a.Level)
}

func TestLevelThresholds(t *testing.T) {
	tests := []struct {
		selected []string
		score    int
		want     model.RiskLevel
	}{
		{[]string{signal.Urgent}, 2, model.RiskGreen},
		{[]string{signal.Urgent, signal.Transfer}, 4, model.RiskYellow},
		{[]string{signal.Urgent, signal.Transfer, signal.Impersonate}, 6, model.RiskRed},
		{[]string{signal.OTP, signal.Impersonate}, 5, model.RiskYellow},
	}

	for _, tt := range tests {
		a := Assess(signal.Default(), tt.selected, "")
		assert.Equal(t, tt.score, a.Score, "score for %v", tt.selected)
		assert.Equal(t, tt.want, a.Level, "level for %v", tt.selected)
	}
}

func TestAppliedIsUnionInCatalogOrder(t *testing.T) {
	selected := []string{signal.Impersonate, signal.Urgent}
	a := Assess(signal.Default(), selected, "ขอรหัส OTP ด่วน")

	assert.Equal(t, []string{signal.Urgent, signal.OTP}, a.Detected)
	assert.Equal(t, []string{signal.Urgent, signal.OTP, signal.Impersonate}, a.Applied)
	assert.Equal(t, 7, a.Score, "urgent counted once")
	assert.Equal(t, []string{signal.Impersonate, signal.Urgent}, selected, "input untouched")
}

func TestReasonsCappedAtThree(t *testing.T) {
	a := Assess(signal.Default(), signal.Default().IDs(), "")
	assert.Len(t, a.Applied, 5)
	assert.Len(t, a.Reasons, MaxReasons)
	assert.Equal(t, 12, a.Score)
}

func TestUnknownSelectedIgnored(t *testing.T) {
	a := Assess(signal.Default(), []string{"bogus"}, "")
	assert.Empty(t, a.Applied)
	assert.Equal(t, model.RiskGreen, a.Level)
}

func TestActionsByLevel(t *testing.T) {
	red := Assess(signal.Default(), []string{signal.NoCallback}, "")
	assert.Equal(t, ActionStopReport, red.Actions()[0])

	yellow := Assess(signal.Default(), []string{signal.OTP}, "")
	assert.Equal(t, []Action{ActionStartChallenge, ActionCallBack}, yellow.Actions())
}
