package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"app-vet/internal/adapters/auth/jwtauth"
	"app-vet/internal/adapters/storage"
	"app-vet/internal/domain/users"
	"app-vet/internal/middleware"
	"app-vet/internal/ports/auth"
	"app-vet/internal/router"
)

type fixedTokens string

func (f fixedTokens) Generate() string { return string(f) }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *recordingNotifier) Send(_ context.Context, contact, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, contact+"|"+message)
	return nil
}

type actor struct {
	id, role, clinicID string
}

var (
	tutor   = actor{id: "u-tutor", role: "tutor"}
	clinicA = actor{id: "u-clinic-a", role: "clinic", clinicID: "c-a"}
	clinicB = actor{id: "u-clinic-b", role: "clinic", clinicID: "c-b"}
	admin   = actor{id: "u-admin", role: "admin"}
	nobody  = actor{}
)

type animalView struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	ClinicID          string `json:"clinic_id"`
	VerificationToken string `json:"verification_token"`
	TokenValidated    bool   `json:"token_validated"`
	ScheduledAt       string `json:"scheduled_at"`
	CompletedAt       string `json:"completed_at"`
}

func TestHTTP_EndToEnd_AnimalLifecycle(t *testing.T) {
	notifier := &recordingNotifier{}
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Notifier: notifier,
		Tokens:   fixedTokens("012345"),
	}))
	defer ts.Close()

	// 1) Tutor registra al animal
	var rex animalView
	{
		st, body := doReq(t, ts.URL, "POST", "/animals", tutor, map[string]any{
			"name":      "Rex",
			"species":   "dog",
			"contact":   "+55 11 91234-5678",
			"procedure": "castração",
		})
		if st != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d body=%s", st, body)
		}
		mustJSON(t, body, &rex)
		if rex.Status != "waiting" || rex.ClinicID != "" {
			t.Fatalf("unexpected new animal: %+v", rex)
		}
	}

	// 2) Las dos clínicas lo ven en la cola
	for _, c := range []actor{clinicA, clinicB} {
		st, body := doReq(t, ts.URL, "GET", "/animals/waiting", c, nil)
		if st != http.StatusOK || !strings.Contains(string(body), rex.ID) {
			t.Fatalf("waiting for %s: status=%d body=%s", c.id, st, body)
		}
	}

	// 3) Claim: A gana, B llega tarde
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/claim", clinicA, nil)
		if st != http.StatusOK {
			t.Fatalf("claim A: expected 200, got %d body=%s", st, body)
		}
		st, _ = doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/claim", clinicB, nil)
		if st != http.StatusConflict {
			t.Fatalf("claim B: expected 409, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/animals/"+rex.ID, clinicB, nil)
		if st != http.StatusForbidden {
			t.Fatalf("clinic B must not see claimed animal, got %d", st)
		}
	}

	// 4) Solo la clínica dueña agenda
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/schedule", clinicB, map[string]string{"scheduled_at": "2025-06-01T10:00"})
		if st != http.StatusForbidden {
			t.Fatalf("schedule by B: expected 403, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/schedule", clinicA, map[string]string{"scheduled_at": "mañana"})
		if st != http.StatusBadRequest {
			t.Fatalf("bad datetime: expected 400, got %d", st)
		}

		st, body := doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/schedule", clinicA, map[string]string{"scheduled_at": "2025-06-01T10:00"})
		if st != http.StatusOK {
			t.Fatalf("schedule: expected 200, got %d body=%s", st, body)
		}
		var got animalView
		mustJSON(t, body, &got)
		if got.Status != "scheduled" || got.ScheduledAt != "2025-06-01T10:00:00Z" {
			t.Fatalf("unexpected scheduled animal: %+v", got)
		}
		if got.VerificationToken != "" {
			t.Fatalf("clinic must not receive the token")
		}
	}

	// 5) El tutor ve el token y recibió el aviso
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+rex.ID, tutor, nil)
		var got animalView
		mustJSON(t, body, &got)
		if st != http.StatusOK || got.VerificationToken != "012345" {
			t.Fatalf("tutor view: status=%d %+v", st, got)
		}

		notifier.mu.Lock()
		sent := append([]string(nil), notifier.sent...)
		notifier.mu.Unlock()
		want := "+55 11 91234-5678|Seu agendamento para Rex foi confirmado. Token: 012345"
		if len(sent) != 1 || sent[0] != want {
			t.Fatalf("unexpected notifications: %v", sent)
		}
	}

	// 6) Validación del token
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/validate-token", clinicA, map[string]string{"token": "999999"})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("wrong token: expected 422, got %d", st)
		}
		st, body := doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/validate-token", clinicA, map[string]string{"token": " 012345 "})
		var got animalView
		mustJSON(t, body, &got)
		if st != http.StatusOK || !got.TokenValidated || got.Status != "scheduled" {
			t.Fatalf("validate: status=%d %+v", st, got)
		}
	}

	// 7) Completar
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/complete", clinicA, nil)
		var got animalView
		mustJSON(t, body, &got)
		if st != http.StatusOK || got.Status != "completed" || got.CompletedAt == "" {
			t.Fatalf("complete: status=%d %+v", st, got)
		}
		st, _ = doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/complete", clinicA, nil)
		if st != http.StatusConflict {
			t.Fatalf("second complete: expected 409, got %d", st)
		}
	}

	// 8) Dashboards por rol
	{
		var list []animalView
		_, body := doReq(t, ts.URL, "GET", "/animals", clinicA, nil)
		mustJSON(t, body, &list)
		if len(list) != 1 || list[0].ID != rex.ID {
			t.Fatalf("clinic A dashboard: %s", body)
		}
		_, body = doReq(t, ts.URL, "GET", "/animals", clinicB, nil)
		mustJSON(t, body, &list)
		if len(list) != 0 {
			t.Fatalf("clinic B dashboard must be empty: %s", body)
		}
	}
}

func TestHTTP_RoleAndAuthErrors(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "GET", "/animals", nobody, nil); st != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/animals", clinicA, map[string]any{"name": "Rex", "species": "dog"}); st != http.StatusForbidden {
		t.Fatalf("clinic create: expected 403, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/animals", tutor, map[string]any{"name": "Rex"}); st != http.StatusBadRequest {
		t.Fatalf("missing species: expected 400, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/animals/waiting", tutor, nil); st != http.StatusForbidden {
		t.Fatalf("tutor waiting list: expected 403, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/animals/nope/claim", clinicA, nil); st != http.StatusNotFound {
		t.Fatalf("unknown animal: expected 404, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/clinics", clinicA, map[string]any{"name": "X"}); st != http.StatusForbidden {
		t.Fatalf("clinic creating clinic: expected 403, got %d", st)
	}
}

func TestHTTP_AdminClinicAndAssign(t *testing.T) {
	store := storage.Memory()

	// Las cuentas de clínica se crean por CLI; acá directo sobre el mismo store.
	vet, err := users.NewService(store.Users, nil).Create(context.Background(), users.CreateInput{
		Username: "vet-centro",
		Password: "secreto1",
		Role:     auth.RoleClinic,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{Store: store, Tokens: fixedTokens("000001")}))
	defer ts.Close()

	var clinic struct {
		ID                   string `json:"id"`
		RepresentativeUserID string `json:"representative_user_id"`
	}
	st, body := doReq(t, ts.URL, "POST", "/clinics", admin, map[string]any{
		"name":                   "Centro Vet",
		"representative_user_id": vet.ID,
	})
	if st != http.StatusCreated {
		t.Fatalf("create clinic: expected 201, got %d body=%s", st, body)
	}
	mustJSON(t, body, &clinic)
	if clinic.RepresentativeUserID != vet.ID {
		t.Fatalf("representative not linked: %s", body)
	}

	st, _ = doReq(t, ts.URL, "POST", "/clinics", admin, map[string]any{"name": "Otra", "representative_user_id": "ghost"})
	if st != http.StatusBadRequest {
		t.Fatalf("unknown representative: expected 400, got %d", st)
	}

	var rex animalView
	_, body = doReq(t, ts.URL, "POST", "/animals", tutor, map[string]any{"name": "Rex", "species": "dog"})
	mustJSON(t, body, &rex)

	// El usuario clínica sin clinic_id en el token se resuelve por su clínica.
	vetActor := actor{id: vet.ID, role: "clinic"}
	st, body = doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/claim", vetActor, nil)
	var claimed animalView
	mustJSON(t, body, &claimed)
	if st != http.StatusOK || claimed.ClinicID != clinic.ID {
		t.Fatalf("claim via clinic lookup: status=%d body=%s", st, body)
	}

	// Reasignación administrativa
	if st, _ := doReq(t, ts.URL, "POST", "/admin/animals/"+rex.ID+"/assign", clinicA, map[string]string{"clinic_id": clinic.ID}); st != http.StatusForbidden {
		t.Fatalf("assign by clinic: expected 403, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/admin/animals/"+rex.ID+"/assign", admin, map[string]string{"clinic_id": "c-missing"}); st != http.StatusNotFound {
		t.Fatalf("assign to missing clinic: expected 404, got %d", st)
	}
	st, body = doReq(t, ts.URL, "POST", "/admin/animals/"+rex.ID+"/assign", admin, map[string]string{"clinic_id": clinic.ID})
	var assigned animalView
	mustJSON(t, body, &assigned)
	if st != http.StatusOK || assigned.Status != "awaiting_scheduling" {
		t.Fatalf("assign: status=%d body=%s", st, body)
	}
}

func TestHTTP_EditAndDelete(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Tokens: fixedTokens("000002")}))
	defer ts.Close()

	var rex animalView
	_, body := doReq(t, ts.URL, "POST", "/animals", tutor, map[string]any{"name": "Rex", "species": "dog"})
	mustJSON(t, body, &rex)

	var edited struct {
		Name    string `json:"name"`
		Breed   string `json:"breed"`
		Status  string `json:"status"`
		Version int    `json:"version"`
	}
	st, body := doReq(t, ts.URL, "PATCH", "/animals/"+rex.ID, tutor, map[string]any{"name": "Rex II", "breed": "SRD"})
	if st != http.StatusOK {
		t.Fatalf("edit: expected 200, got %d body=%s", st, body)
	}
	mustJSON(t, body, &edited)
	if edited.Name != "Rex II" || edited.Breed != "SRD" || edited.Status != "waiting" || edited.Version != 2 {
		t.Fatalf("unexpected edit result: %s", body)
	}

	// status no es editable por PATCH
	if st, _ := doReq(t, ts.URL, "PATCH", "/animals/"+rex.ID, admin, map[string]any{"status": "completed"}); st != http.StatusBadRequest {
		t.Fatalf("status via patch: expected 400, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "PATCH", "/animals/"+rex.ID, clinicA, map[string]any{"name": "X"}); st != http.StatusForbidden {
		t.Fatalf("clinic editing unclaimed: expected 403, got %d", st)
	}

	// una clínica con animales asignados no se borra
	var clinic struct {
		ID string `json:"id"`
	}
	_, body = doReq(t, ts.URL, "POST", "/clinics", admin, map[string]any{"name": "Centro"})
	mustJSON(t, body, &clinic)
	if st, body := doReq(t, ts.URL, "POST", "/animals/"+rex.ID+"/claim", admin, map[string]string{"clinic_id": clinic.ID}); st != http.StatusOK {
		t.Fatalf("admin claim: %d %s", st, body)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/clinics/"+clinic.ID, clinicA, nil); st != http.StatusForbidden {
		t.Fatalf("clinic deleting clinic: expected 403, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/clinics/"+clinic.ID, admin, nil); st != http.StatusConflict {
		t.Fatalf("delete clinic in use: expected 409, got %d", st)
	}

	if st, _ := doReq(t, ts.URL, "DELETE", "/animals/"+rex.ID, clinicB, nil); st != http.StatusForbidden {
		t.Fatalf("other clinic delete: expected 403, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/animals/"+rex.ID, tutor, nil); st != http.StatusNoContent {
		t.Fatalf("owner delete: expected 204, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/animals/"+rex.ID, tutor, nil); st != http.StatusNotFound {
		t.Fatalf("deleted animal: expected 404, got %d", st)
	}

	if st, _ := doReq(t, ts.URL, "DELETE", "/clinics/"+clinic.ID, admin, nil); st != http.StatusNoContent {
		t.Fatalf("delete clinic: expected 204, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/clinics/"+clinic.ID, admin, nil); st != http.StatusNotFound {
		t.Fatalf("deleted clinic: expected 404, got %d", st)
	}
}

func TestHTTP_LoginAndBearer(t *testing.T) {
	ja, err := jwtauth.New(jwtauth.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: ja, TokenIssuer: ja, LoginRateLimit: 100}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/auth/register", nobody, map[string]string{
		"username": "ana",
		"password": "123456",
		"contact":  "555",
	})
	if st != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d body=%s", st, body)
	}

	st, _ = doReq(t, ts.URL, "POST", "/auth/login", nobody, map[string]string{"username": "ana", "password": "wrong!"})
	if st != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", st)
	}

	var sess struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	st, body = doReq(t, ts.URL, "POST", "/auth/login", nobody, map[string]string{"username": "ana", "password": "123456"})
	if st != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", st, body)
	}
	mustJSON(t, body, &sess)
	if sess.AccessToken == "" || sess.TokenType != "Bearer" {
		t.Fatalf("unexpected session: %s", body)
	}

	req, _ := http.NewRequest("POST", ts.URL+"/animals", strings.NewReader(`{"name":"Mia","species":"cat"}`))
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("bearer create: expected 201, got %d", res.StatusCode)
	}
	if res.Header.Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	// Con verifier los headers de debug no autentican.
	if st, _ := doReq(t, ts.URL, "GET", "/animals", tutor, nil); st != http.StatusUnauthorized {
		t.Fatalf("debug headers with verifier: expected 401, got %d", st)
	}
}

func TestHTTP_RepresentativeChangeRevokesStaleToken(t *testing.T) {
	ja, err := jwtauth.New(jwtauth.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	store := storage.Memory()
	usersSvc := users.NewService(store.Users, nil)
	ctx := context.Background()

	var vets []users.User
	for _, name := range []string{"vet1", "vet2"} {
		u, err := usersSvc.Create(ctx, users.CreateInput{Username: name, Password: "secreto1", Role: auth.RoleClinic})
		if err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
		vets = append(vets, u)
	}
	adminToken, _, _ := ja.Issue(auth.Claims{UserID: "u-admin", Role: auth.RoleAdmin})
	tutorToken, _, _ := ja.Issue(auth.Claims{UserID: "u-tutor", Role: auth.RoleTutor})

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: ja,
		TokenIssuer:  ja,
		Store:        store,
		Tokens:       fixedTokens("424242"),
	}))
	defer ts.Close()

	var clinic struct {
		ID string `json:"id"`
	}
	st, body := doBearer(t, ts.URL, "POST", "/clinics", adminToken, map[string]any{"name": "Centro", "representative_user_id": vets[0].ID})
	if st != http.StatusCreated {
		t.Fatalf("create clinic: %d %s", st, body)
	}
	mustJSON(t, body, &clinic)

	login := func(username string) string {
		t.Helper()
		var sess struct {
			AccessToken string `json:"access_token"`
		}
		st, body := doReq(t, ts.URL, "POST", "/auth/login", nobody, map[string]string{"username": username, "password": "secreto1"})
		if st != http.StatusOK {
			t.Fatalf("login %s: %d %s", username, st, body)
		}
		mustJSON(t, body, &sess)
		return sess.AccessToken
	}
	vet1Token := login("vet1")

	var rex animalView
	_, body = doBearer(t, ts.URL, "POST", "/animals", tutorToken, map[string]any{"name": "Rex", "species": "dog"})
	mustJSON(t, body, &rex)

	if st, body := doBearer(t, ts.URL, "POST", "/animals/"+rex.ID+"/claim", vet1Token, nil); st != http.StatusOK {
		t.Fatalf("claim by vet1: %d %s", st, body)
	}

	if st, body := doBearer(t, ts.URL, "PATCH", "/clinics/"+clinic.ID, adminToken, map[string]any{"representative_user_id": vets[1].ID}); st != http.StatusOK {
		t.Fatalf("change representative: %d %s", st, body)
	}

	when := map[string]string{"scheduled_at": "2025-06-01T10:00"}
	if st, _ := doBearer(t, ts.URL, "POST", "/animals/"+rex.ID+"/schedule", vet1Token, when); st != http.StatusForbidden {
		t.Fatalf("schedule with stale token: expected 403, got %d", st)
	}
	if st, _ := doBearer(t, ts.URL, "GET", "/animals/"+rex.ID, vet1Token, nil); st != http.StatusForbidden {
		t.Fatalf("get with stale token: expected 403, got %d", st)
	}

	vet2Token := login("vet2")
	if st, body := doBearer(t, ts.URL, "POST", "/animals/"+rex.ID+"/schedule", vet2Token, when); st != http.StatusOK {
		t.Fatalf("schedule by new representative: %d %s", st, body)
	}
}

func TestHTTP_AuthRateLimitIgnoresForwardedFor(t *testing.T) {
	ja, err := jwtauth.New(jwtauth.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: ja, TokenIssuer: ja, LoginRateLimit: 2}))
	defer ts.Close()

	post := func(path, forwardedFor string) int {
		t.Helper()
		req, _ := http.NewRequest("POST", ts.URL+path, strings.NewReader(`{"username":"ana","password":"wrong!"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do: %v", err)
		}
		res.Body.Close()
		return res.StatusCode
	}

	// Cada intento dice venir de otra IP; sin TrustProxy cuenta la del peer.
	if st := post("/auth/login", "203.0.113.1"); st != http.StatusUnauthorized {
		t.Fatalf("first login: expected 401, got %d", st)
	}
	if st := post("/auth/login", "203.0.113.2"); st != http.StatusUnauthorized {
		t.Fatalf("second login: expected 401, got %d", st)
	}
	if st := post("/auth/login", "203.0.113.3"); st != http.StatusTooManyRequests {
		t.Fatalf("third login: expected 429, got %d", st)
	}
	if st := post("/auth/register", "203.0.113.4"); st != http.StatusTooManyRequests {
		t.Fatalf("register shares the limit: expected 429, got %d", st)
	}
}

func TestHTTP_LoginDisabledWithoutIssuer(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/auth/login", nobody, map[string]string{"username": "x", "password": "123456"})
	if st != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", st)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, body := doReq(t, ts.URL, "GET", "/health", nobody, nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, body)
	}

	_, _ = doReq(t, ts.URL, "GET", "/animals/waiting", clinicA, nil)
	st, body := doReq(t, ts.URL, "GET", "/metrics", nobody, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `http_requests_total{method="GET",path="/animals/waiting",status="200"}`) {
		t.Fatalf("metrics missing route series: status=%d", st)
	}
}

func TestHTTP_SwaggerDoc(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nobody, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "/animals/{animalID}/claim") {
		t.Fatalf("swagger doc: status=%d", st)
	}
}

func doReq(t *testing.T, baseURL, method, path string, as actor, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as.id != "" {
		req.Header.Set(middleware.HeaderDebugUserID, as.id)
		req.Header.Set(middleware.HeaderDebugRole, as.role)
		if as.clinicID != "" {
			req.Header.Set(middleware.HeaderDebugClinicID, as.clinicID)
		}
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

// doBearer es doReq con Authorization: Bearer en lugar de los headers de debug.
func doBearer(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func mustJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json: %v body=%s", err, body)
	}
}
