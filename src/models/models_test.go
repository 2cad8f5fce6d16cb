package models

import (
	"encoding/json"
	"errors"
	"plannova/src/types"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestVendorJSONExposesFlags(t *testing.T) {
	v := Vendor{ID: uuid.New(), Name: "Rangoli Decor", Email: "hello@rangoli.in", Phase: types.VENDOR_APPROVED}
	b, err := json.Marshal(v)
	require.Nil(t, err)

	body := string(b)
	assert.True(t, gjson.Get(body, "approved").Bool())
	assert.False(t, gjson.Get(body, "rejected").Bool())
	assert.False(t, gjson.Get(body, "status").Exists())
	assert.Equal(t, v.ID.String(), gjson.Get(body, "id").String())
}

func TestVendorJSONPending(t *testing.T) {
	b, err := json.Marshal(&Vendor{ID: uuid.New(), Name: "Tent House", Phase: types.VENDOR_PENDING})
	require.Nil(t, err)
	assert.False(t, gjson.GetBytes(b, "approved").Bool())
	assert.False(t, gjson.GetBytes(b, "rejected").Bool())
}

func TestVendorJSONRejectsUnknownPhase(t *testing.T) {
	_, err := json.Marshal(Vendor{ID: uuid.New(), Phase: "archived"})
	assert.True(t, errors.Is(err, types.ErrIntegrityViolation))
}

func TestVendorUnmarshal(t *testing.T) {
	var v Vendor
	err := json.Unmarshal([]byte(`{"id":"8f14e45f-ceea-4e7a-9f5b-9b0a8c5f1d2e","name":"Sur Sangam","approved":false,"rejected":true}`), &v)
	require.Nil(t, err)
	assert.Equal(t, types.VENDOR_REJECTED, v.Phase)

	err = json.Unmarshal([]byte(`{"name":"Broken","approved":true,"rejected":true}`), &v)
	assert.True(t, errors.Is(err, types.ErrIntegrityViolation))
}

func TestServiceSlug(t *testing.T) {
	s := Service{VendorName: "Rangoli Decor", Name: "Mandap Setup"}
	require.Nil(t, s.BeforeCreate(nil))
	assert.Equal(t, "rangoli-decor-mandap-setup", s.Slug)

	kept := Service{VendorName: "x", Name: "y", Slug: "custom"}
	require.Nil(t, kept.BeforeCreate(nil))
	assert.Equal(t, "custom", kept.Slug)
}
