package cache

import (
	"testing"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsStable(t *testing.T) {
	params := entity.DefaultParams()
	params.Logo.Image = []byte("logo")
	params.Coupon.Text = []string{"25% off"}

	first, err := Key([]byte("base"), params)
	require.NoError(t, err)
	second, err := Key([]byte("base"), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestKeyChangesWithInputs(t *testing.T) {
	params := entity.DefaultParams()
	baseKey, err := Key([]byte("base"), params)
	require.NoError(t, err)

	tests := []struct {
		name   string
		base   []byte
		mutate func(p *entity.Params)
	}{
		{name: "base bytes", base: []byte("other"), mutate: func(p *entity.Params) {}},
		{name: "logo image", base: []byte("base"), mutate: func(p *entity.Params) { p.Logo.Image = []byte("x") }},
		{name: "coupon background", base: []byte("base"), mutate: func(p *entity.Params) { p.CouponBackground.Image = []byte("x") }},
		{name: "coupon position", base: []byte("base"), mutate: func(p *entity.Params) { p.Coupon.X = 0.25 }},
		{name: "usp text", base: []byte("base"), mutate: func(p *entity.Params) { p.USPStrip.Text = []string{"Free Cancellation"} }},
		{name: "strip color", base: []byte("base"), mutate: func(p *entity.Params) { p.USPStrip.FillColor = "#111111" }},
		{name: "font path", base: []byte("base"), mutate: func(p *entity.Params) { p.FontPath = "/fonts/other.ttf" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := entity.DefaultParams()
			tt.mutate(&p)
			key, err := Key(tt.base, p)
			require.NoError(t, err)
			assert.NotEqual(t, baseKey, key)
		})
	}
}

func TestKeySeparatesImageBoundaries(t *testing.T) {
	a := entity.DefaultParams()
	a.Logo.Image = []byte("ab")
	b := entity.DefaultParams()
	b.Logo.Image = []byte("a")
	b.LogoBackground.Image = []byte("b")

	keyA, err := Key([]byte("base"), a)
	require.NoError(t, err)
	keyB, err := Key([]byte("base"), b)
	require.NoError(t, err)
	assert.NotEqual(t, keyA, keyB)
}
