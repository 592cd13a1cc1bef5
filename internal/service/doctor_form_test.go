package service

import (
	"context"
	"testing"

	"fieldrep/internal/model"
	"fieldrep/internal/selector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoctorForm(t *testing.T, store *recordingStore, typ string) *DoctorForm {
	t.Helper()
	form := NewDoctorForm(testDeps(store, rep, nil))
	_, err := form.LoadLocations(context.Background())
	require.NoError(t, err)
	fillDoctor(t, form, typ)
	return form
}

func fillDoctor(t *testing.T, form *DoctorForm, typ string) {
	t.Helper()
	for k, v := range map[string]string{
		"name":          "Dr. Kavita Joshi",
		"type":          typ,
		"submitterName": "Asha Patil",
		"phone":         "+91 98200 12345",
		"address":       "14 FC Road, Shivajinagar",
		"city":          "Pune",
	} {
		require.NoError(t, form.SetField(k, v))
	}
}

func TestDoctorForm_SpecialityRequiredOnlyForDoctors(t *testing.T) {
	store := newRecordingStore()

	doctor := validDoctorForm(t, store, "Doctor")
	assert.Contains(t, doctor.Validate(), "speciality")
	_, err := doctor.Submit(context.Background())
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Zero(t, store.creates.Load())

	chemist := validDoctorForm(t, store, "Chemist")
	assert.Empty(t, chemist.Validate())

	require.NoError(t, doctor.SetField("speciality", "Cardiologist"))
	assert.Empty(t, doctor.Validate())
}

func TestDoctorForm_ChangingTypeAwayFromDoctorClearsSpeciality(t *testing.T) {
	form := validDoctorForm(t, newRecordingStore(), "Doctor")
	require.NoError(t, form.SetField("speciality", "Pediatrician"))
	require.NoError(t, form.SetField("type", "stockiest"))

	d := form.Draft()
	assert.Equal(t, model.DoctorTypeStockiest, d.Type)
	assert.Empty(t, d.Speciality)
	assert.Empty(t, form.Validate())

	require.NoError(t, form.SetField("speciality", "Pediatrician"))
	assert.Contains(t, form.Validate(), "speciality")
}

func TestDoctorForm_RequiredFields(t *testing.T) {
	form := NewDoctorForm(testDeps(newRecordingStore(), rep, nil))
	errs := form.Validate()
	for _, field := range []string{"name", "type", "submitterName", "phone", "address", "city"} {
		assert.Contains(t, errs, field)
	}
	assert.Equal(t, "Submitted by is required", errs["submitterName"])
	assert.NotContains(t, errs, "email")
}

func TestDoctorForm_EmailFormat(t *testing.T) {
	form := validDoctorForm(t, newRecordingStore(), "Chemist")
	require.NoError(t, form.SetField("email", "not-an-email"))
	assert.Equal(t, "Email must be a valid email address", form.Validate()["email"])

	require.NoError(t, form.SetField("email", "orders@wellness.example"))
	assert.Empty(t, form.Validate())
}

func TestDoctorForm_PhoneOnlyRequired(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()
	form := validDoctorForm(t, store, "Chemist")
	require.NoError(t, form.SetField("phone", "555-1234"))
	form.AddVisualAid("gallery/shelf-1.jpg")
	require.Empty(t, form.Validate())

	entry, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "555-1234", entry.Phone)
	assert.Equal(t, []string{"gallery/shelf-1.jpg"}, []string(entry.VisualAids))

	require.NoError(t, form.SetField("phone", "  "))
	assert.Equal(t, "Phone is required", form.Validate()["phone"])
}

func TestDoctorForm_CityMustBelongToHeadquarters(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()
	form := validDoctorForm(t, store, "Chemist")

	cities, err := form.LoadLocations(ctx)
	require.NoError(t, err)
	assert.Contains(t, cities, "Pune")

	require.NoError(t, form.SetField("city", "Mumbai"))
	assert.Contains(t, form.Validate(), "city")

	anchor := selector.MeasureFunc(func(context.Context) (selector.Bounds, error) {
		return selector.Bounds{Width: 200, Height: 40}, nil
	})
	picker := form.CitySelector(anchor)
	require.NoError(t, picker.Open(ctx))
	require.NoError(t, picker.Select("Satara"))
	assert.Empty(t, form.Validate())
}

func TestDoctorForm_ValidateAgreesWithSubmitBeforeLocationsLoad(t *testing.T) {
	store := newRecordingStore()
	form := NewDoctorForm(testDeps(store, rep, nil))
	fillDoctor(t, form, "Chemist")

	errs := form.Validate()
	assert.Equal(t, "Locations are not loaded", errs["city"])

	_, err := form.Submit(context.Background())
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "city")
	assert.Zero(t, store.creates.Load())
}

func TestDoctorForm_SubmitRejectsCityOutsideHeadquarters(t *testing.T) {
	store := newRecordingStore()
	form := validDoctorForm(t, store, "Chemist")
	require.NoError(t, form.SetField("city", "Kolkata"))
	require.Contains(t, form.Validate(), "city")

	_, err := form.Submit(context.Background())
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "city")
	assert.Zero(t, store.creates.Load())
}

func TestDoctorForm_UnknownHeadquartersAcceptsAnyCity(t *testing.T) {
	identity := rep
	identity.Headquarters = "Nagpur"
	form := NewDoctorForm(testDeps(newRecordingStore(), identity, nil))
	cities, err := form.LoadLocations(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cities)

	fillDoctor(t, form, "Chemist")
	require.NoError(t, form.SetField("city", "Nagpur"))
	assert.Empty(t, form.Validate())
}

func TestDoctorForm_SubmitKeepsVisualAidOrder(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStore()
	refresher := &recordingRefresher{}
	form := validDoctorForm(t, store, "Doctor")
	form.deps.Refresher = refresher
	require.NoError(t, form.SetField("speciality", "Cardiologist"))
	form.AddVisualAid("https://cdn.example.com/aids/heart.jpg?quality=40")
	form.AddVisualAid("https://cdn.example.com/aids/statins.jpg")
	form.AddVisualAid("https://cdn.example.com/aids/heart.jpg?quality=40")

	entry, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, entry.Status)

	got, err := store.FindDoctor(ctx, "U1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.example.com/aids/heart.jpg?quality=40",
		"https://cdn.example.com/aids/statins.jpg",
		"https://cdn.example.com/aids/heart.jpg?quality=40",
	}, []string(got.VisualAids))

	assert.Empty(t, form.Draft().VisualAids)
	assert.Equal(t, []refreshCall{{model.KindDoctor, "U1"}}, refresher.Calls())
}

func TestDoctorForm_VisualAidMustNotBeEmpty(t *testing.T) {
	form := validDoctorForm(t, newRecordingStore(), "Chemist")
	form.AddVisualAid("https://cdn.example.com/a.png")
	form.AddVisualAid("  ")
	assert.Contains(t, form.Validate(), "visualAids[1]")
}
