package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	apperrors "vessel-orders/pkg/errors"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/uploads", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestAttachmentService(t *testing.T) {
	engineer := newUser("Carla Engineer", authz.RoleChiefEngineer, authz.SectorCrew)
	clerk := newUser("Davi Clerk", authz.RoleCommon, authz.SectorHR)
	users := newFakeUserRepo(engineer, clerk)
	storage := newFakeStorage()
	svc := NewAttachmentService(storage, authz.NewEngine(testDomain), NewIdentityLoader(users), zap.NewNop())

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	out, err := svc.Upload(asUser(engineer), fileHeader(t, "../../pump.png", png))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/orders/2026/03/10/pump.png", out.URL)
	assert.Contains(t, storage.saved, out.URL)

	_, err = svc.Upload(asUser(engineer), fileHeader(t, "notes.txt", []byte("plain text notes")))
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Upload(asUser(clerk), fileHeader(t, "pump.png", png))
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	require.ErrorIs(t, svc.Delete(asUser(engineer), "/etc/passwd"), apperrors.ErrBadRequest)
	require.NoError(t, svc.Delete(asUser(engineer), out.URL))
	assert.Equal(t, []string{out.URL}, storage.deleted)
}
