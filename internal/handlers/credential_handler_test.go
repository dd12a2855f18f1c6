package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialHandler_CreateAndGet(t *testing.T) {
	router := newTestRouter(t)

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			ID        string `json:"id"`
			SiteLabel string `json:"site_label"`
		} `json:"data"`
	}
	rec := doJSON(t, router, http.MethodPost, "/api/credentials", map[string]string{
		"site_label":         "GitHub",
		"account_identifier": "octo@example.com",
		"secret":             "Sup3rSecret",
		"auxiliary_info":     "recovery: 1234",
		"category":           "work",
	}, &created)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, created.Success)
	assert.NotEmpty(t, created.Data.ID)
	// ни хеш, ни сам секрет не должны попадать в ответ
	assert.NotContains(t, rec.Body.String(), "secret_hash")
	assert.NotContains(t, rec.Body.String(), "Sup3rSecret")

	var got struct {
		Success bool `json:"success"`
		Data    struct {
			ID            string `json:"id"`
			SiteLabel     string `json:"site_label"`
			AuxiliaryInfo string `json:"auxiliary_info"`
			Category      string `json:"category"`
		} `json:"data"`
	}
	rec = doJSON(t, router, http.MethodGet, "/api/credentials/"+created.Data.ID, nil, &got)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GitHub", got.Data.SiteLabel)
	// одиночное чтение возвращает расшифрованные сведения
	assert.Equal(t, "recovery: 1234", got.Data.AuxiliaryInfo)
	assert.Equal(t, "work", got.Data.Category)
	assert.NotContains(t, rec.Body.String(), "secret_hash")
	assert.NotContains(t, rec.Body.String(), "Sup3rSecret")
}

func TestCredentialHandler_ListHidesSecrets(t *testing.T) {
	router := newTestRouter(t)

	for _, label := range []string{"GitHub", "GitLab"} {
		rec := doJSON(t, router, http.MethodPost, "/api/credentials", map[string]string{
			"site_label":         label,
			"account_identifier": "octo",
			"secret":             "Sup3rSecret",
			"auxiliary_info":     "top secret notes",
		}, nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	var list struct {
		Success    bool             `json:"success"`
		Data       []map[string]any `json:"data"`
		Pagination *struct {
			Page  int   `json:"page"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	rec := doJSON(t, router, http.MethodGet, "/api/credentials?page=1&page_size=10", nil, &list)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, list.Data, 2)
	assert.NotNil(t, list.Pagination)
	assert.Equal(t, int64(2), list.Pagination.Total)

	// список не содержит ни хеша, ни шифртекста, ни расшифрованных сведений
	body := rec.Body.String()
	assert.NotContains(t, body, "secret_hash")
	assert.NotContains(t, body, "auxiliary_info")
	assert.NotContains(t, body, "top secret notes")
}

func TestCredentialHandler_Verify(t *testing.T) {
	router := newTestRouter(t)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	rec := doJSON(t, router, http.MethodPost, "/api/credentials", map[string]string{
		"site_label":         "Bank",
		"account_identifier": "client-1",
		"secret":             "CorrectHorse1",
	}, &created)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var verdict struct {
		Data struct {
			Valid bool `json:"valid"`
		} `json:"data"`
	}

	rec = doJSON(t, router, http.MethodPost, "/api/credentials/"+created.Data.ID+"/verify",
		map[string]string{"secret": "CorrectHorse1"}, &verdict)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, verdict.Data.Valid)

	rec = doJSON(t, router, http.MethodPost, "/api/credentials/"+created.Data.ID+"/verify",
		map[string]string{"secret": "wrong"}, &verdict)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, verdict.Data.Valid)

	// несуществующая запись неотличима от неверного пароля
	rec = doJSON(t, router, http.MethodPost, "/api/credentials/no-such-id/verify",
		map[string]string{"secret": "anything"}, &verdict)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, verdict.Data.Valid)
}

func TestCredentialHandler_UpdateKeepsSecretWhenEmpty(t *testing.T) {
	router := newTestRouter(t)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	rec := doJSON(t, router, http.MethodPost, "/api/credentials", map[string]string{
		"site_label":         "Mail",
		"account_identifier": "me@mail.com",
		"secret":             "OldSecret1",
	}, &created)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// обновление без пароля — старый пароль продолжает проходить проверку
	rec = doJSON(t, router, http.MethodPut, "/api/credentials/"+created.Data.ID, map[string]string{
		"site_label":         "Mail renamed",
		"account_identifier": "me@mail.com",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var verdict struct {
		Data struct {
			Valid bool `json:"valid"`
		} `json:"data"`
	}
	doJSON(t, router, http.MethodPost, "/api/credentials/"+created.Data.ID+"/verify",
		map[string]string{"secret": "OldSecret1"}, &verdict)
	assert.True(t, verdict.Data.Valid)

	// обновление с новым паролем — проходит уже только он
	rec = doJSON(t, router, http.MethodPut, "/api/credentials/"+created.Data.ID, map[string]string{
		"site_label":         "Mail renamed",
		"account_identifier": "me@mail.com",
		"secret":             "NewSecret2",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	doJSON(t, router, http.MethodPost, "/api/credentials/"+created.Data.ID+"/verify",
		map[string]string{"secret": "OldSecret1"}, &verdict)
	assert.False(t, verdict.Data.Valid)
	doJSON(t, router, http.MethodPost, "/api/credentials/"+created.Data.ID+"/verify",
		map[string]string{"secret": "NewSecret2"}, &verdict)
	assert.True(t, verdict.Data.Valid)
}

func TestCredentialHandler_ErrorMapping(t *testing.T) {
	router := newTestRouter(t)

	// валидация: 400 с перечнем полей
	var errResp struct {
		Error   bool                `json:"error"`
		Code    string              `json:"code"`
		Errors  map[string][]string `json:"errors"`
		Message string              `json:"message"`
	}
	rec := doJSON(t, router, http.MethodPost, "/api/credentials", map[string]string{
		"secret": "weak",
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, errResp.Error)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
	assert.Contains(t, errResp.Errors, "site_label")
	assert.Contains(t, errResp.Errors, "secret")

	// битый JSON: 400 BAD_REQUEST
	req := httptest.NewRequest(http.MethodPost, "/api/credentials", strings.NewReader("{broken"))
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)

	// несуществующий id: 404 NOT_FOUND
	rec = doJSON(t, router, http.MethodGet, "/api/credentials/no-such-id", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errResp.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/credentials/no-such-id", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
