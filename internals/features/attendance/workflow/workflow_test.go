package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_SubmitHanyaDariKosongAtauAlpha(t *testing.T) {
	next, err := Next(StatusNone, ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, next)

	next, err = Next(StatusAlpha, ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, next)

	for _, s := range []Status{StatusPending, StatusHadir, StatusRejected, StatusInhal, StatusIzinSakit, StatusIzinKampus, StatusIzinLain} {
		_, err := Next(s, ActionSubmit)
		assert.ErrorIs(t, err, ErrIllegalTransition, "submit dari %s harus ditolak", s)
	}
}

func TestNext_KeputusanHanyaDariPending(t *testing.T) {
	next, err := Next(StatusPending, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, StatusHadir, next)

	next, err = Next(StatusPending, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, next)

	for _, s := range []Status{StatusNone, StatusAlpha, StatusHadir, StatusRejected, StatusInhal, StatusIzinSakit} {
		_, err := Next(s, ActionApprove)
		assert.ErrorIs(t, err, ErrIllegalTransition, "approve dari %s harus ditolak", s)
		_, err = Next(s, ActionReject)
		assert.ErrorIs(t, err, ErrIllegalTransition, "reject dari %s harus ditolak", s)
	}
}

func TestNext_BackfillHanyaUntukYangKosong(t *testing.T) {
	next, err := Next(StatusNone, ActionBackfill)
	require.NoError(t, err)
	assert.Equal(t, StatusAlpha, next)

	for _, s := range []Status{StatusPending, StatusHadir, StatusAlpha, StatusRejected, StatusInhal} {
		_, err := Next(s, ActionBackfill)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	}
}

func TestNext_MarkInhal(t *testing.T) {
	for _, s := range []Status{StatusAlpha, StatusRejected, StatusIzinSakit, StatusIzinKampus, StatusIzinLain} {
		next, err := Next(s, ActionMarkInhal)
		require.NoError(t, err, "mark inhal dari %s harus sah", s)
		assert.Equal(t, StatusInhal, next)
	}
	for _, s := range []Status{StatusNone, StatusHadir, StatusInhal, StatusPending} {
		_, err := Next(s, ActionMarkInhal)
		assert.ErrorIs(t, err, ErrIllegalTransition, "mark inhal dari %s harus ditolak", s)
	}
}

func TestNext_ExcuseSahDariSemuaStatusTersimpan(t *testing.T) {
	for _, s := range []Status{StatusNone, StatusAlpha, StatusPending, StatusRejected, StatusHadir, StatusInhal, StatusIzinSakit, StatusIzinKampus, StatusIzinLain} {
		_, err := Next(s, ActionExcuse)
		assert.NoError(t, err, "excuse dari %s harus sah", s)
	}
}

func TestCanSubmit(t *testing.T) {
	assert.True(t, CanSubmit(StatusNone))
	assert.True(t, CanSubmit(StatusAlpha))
	assert.False(t, CanSubmit(StatusPending))
	assert.False(t, CanSubmit(StatusHadir))
	assert.False(t, CanSubmit(StatusRejected))
}

func TestCanRequestInhal(t *testing.T) {
	assert.False(t, CanRequestInhal(StatusNone), "tanpa catatan tidak ada yang di-inhal-kan")
	assert.False(t, CanRequestInhal(StatusHadir))
	assert.False(t, CanRequestInhal(StatusInhal))
	assert.False(t, CanRequestInhal(StatusPending))

	assert.True(t, CanRequestInhal(StatusAlpha))
	assert.True(t, CanRequestInhal(StatusRejected))
	assert.True(t, CanRequestInhal(StatusIzinSakit))
	assert.True(t, CanRequestInhal(StatusIzinKampus))
	assert.True(t, CanRequestInhal(StatusIzinLain))
}

func TestGradable(t *testing.T) {
	assert.True(t, Gradable(StatusHadir))
	assert.True(t, Gradable(StatusInhal))
	for _, s := range []Status{StatusNone, StatusAlpha, StatusPending, StatusRejected, StatusIzinSakit, StatusIzinKampus, StatusIzinLain} {
		assert.False(t, Gradable(s), "%s tidak boleh dinilai", s)
	}
}

func TestMapReasonToStatus(t *testing.T) {
	cases := []struct {
		reason string
		want   Status
	}{
		{"Sakit demam berdarah", StatusIzinSakit},
		{"I am sick today", StatusIzinSakit},
		{"Mengikuti lomba kampus", StatusIzinKampus},
		{"university delegation", StatusIzinKampus},
		{"Official duty", StatusIzinKampus},
		{"Acara keluarga", StatusIzinLain},
		{"", StatusIzinLain},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapReasonToStatus(tc.reason), "alasan: %q", tc.reason)
	}
}

func TestValid(t *testing.T) {
	assert.False(t, Valid(StatusNone))
	assert.False(t, Valid(Status("NGACO")))
	for _, s := range []Status{StatusPending, StatusHadir, StatusRejected, StatusAlpha, StatusInhal, StatusIzinSakit, StatusIzinKampus, StatusIzinLain} {
		assert.True(t, Valid(s))
	}
}

func TestIsExcused(t *testing.T) {
	assert.True(t, IsExcused(StatusIzinSakit))
	assert.True(t, IsExcused(StatusIzinKampus))
	assert.True(t, IsExcused(StatusIzinLain))
	assert.False(t, IsExcused(StatusHadir))
	assert.False(t, IsExcused(StatusAlpha))
}

func TestNormalizeGrade_HanyaUntukStatusBernilai(t *testing.T) {
	grade := 85.0
	for _, s := range []Status{StatusHadir, StatusInhal} {
		got := NormalizeGrade(s, &grade)
		require.NotNil(t, got, "nilai harus dipertahankan untuk %s", s)
		assert.Equal(t, grade, *got)
	}
	for _, s := range []Status{StatusPending, StatusAlpha, StatusRejected, StatusIzinSakit, StatusIzinKampus, StatusIzinLain} {
		assert.Nil(t, NormalizeGrade(s, &grade), "nilai harus dihapus untuk %s", s)
	}
	assert.Nil(t, NormalizeGrade(StatusHadir, nil))
}
