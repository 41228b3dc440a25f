package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"material-manager/core/errs"
	"material-manager/core/utils"
	"material-manager/feature/materials/models"

	"github.com/gofiber/fiber/v2"
)

// REST is a Store backed by a headless CMS collection API.
//
// The API has no revision column; the entry's updatedAt timestamp in
// milliseconds stands in for it.
type REST struct {
	baseURL string
	token   string
	timeout time.Duration
}

// NewREST creates a REST-backed store.
func NewREST(cfg Config) (*REST, error) {
	if cfg.BaseURL == "" {
		return nil, errs.Invalid("docstore.base_url", "required for the rest backend")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &REST{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		timeout: timeout,
	}, nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Pagination struct {
			Page      int `json:"page"`
			PageSize  int `json:"pageSize"`
			PageCount int `json:"pageCount"`
		} `json:"pagination"`
	} `json:"meta"`
	Error *struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func (r *REST) send(ctx context.Context, a *fiber.Agent) (*envelope, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if r.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+r.token)
	}
	a.Timeout(timeout)

	code, body, callErrs := a.Bytes()
	if len(callErrs) > 0 {
		return nil, 0, fmt.Errorf("docstore request failed: %w", errors.Join(callErrs...))
	}
	if code == fiber.StatusNotFound {
		return nil, code, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, code, fmt.Errorf("docstore returned invalid json (status %d): %w", code, err)
	}
	if code >= 400 {
		msg := strconv.Itoa(code)
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return nil, code, fmt.Errorf("docstore request failed: %s", msg)
	}
	return &env, code, nil
}

func (r *REST) get(ctx context.Context, path string, query url.Values) (*envelope, error) {
	a := fiber.Get(r.baseURL + path)
	if len(query) > 0 {
		a.QueryString(query.Encode())
	}
	env, _, err := r.send(ctx, a)
	return env, err
}

func (r *REST) put(ctx context.Context, path string, data map[string]any) (*envelope, error) {
	a := fiber.Put(r.baseURL + path).JSON(map[string]any{"data": data})
	env, code, err := r.send(ctx, a)
	if err == nil && env == nil && code == fiber.StatusNotFound {
		return nil, errs.ErrNotFound
	}
	return env, err
}

// entries decodes data as either a list or a single object.
func entries(env *envelope) ([]map[string]any, error) {
	if env == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}
	var list []map[string]any
	if err := json.Unmarshal(env.Data, &list); err == nil {
		return list, nil
	}
	var one map[string]any
	if err := json.Unmarshal(env.Data, &one); err != nil {
		return nil, fmt.Errorf("docstore data has unexpected shape: %w", err)
	}
	return []map[string]any{one}, nil
}

func (r *REST) decodeCurso(raw map[string]any) (*models.Curso, error) {
	c, err := models.DecodeCurso(raw)
	if err != nil {
		return nil, err
	}
	if c.Revision == 0 {
		if t := utils.ToTime(models.Flatten(raw)["updatedAt"]); t != nil {
			c.Revision = t.UnixMilli()
		}
	}
	return c, nil
}

func (r *REST) findOne(ctx context.Context, collection, key string) (map[string]any, error) {
	q := url.Values{}
	q.Set("filters[documentId][$eq]", key)
	q.Set("populate", "*")
	env, err := r.get(ctx, "/"+collection, q)
	if err != nil {
		return nil, err
	}
	list, err := entries(env)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list[0], nil
	}

	if _, perr := strconv.ParseUint(key, 10, 64); perr != nil {
		return nil, nil
	}
	q = url.Values{}
	q.Set("filters[id][$eq]", key)
	q.Set("populate", "*")
	if env, err = r.get(ctx, "/"+collection, q); err != nil {
		return nil, err
	}
	if list, err = entries(env); err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list[0], nil
	}
	return nil, nil
}

// GetCurso implements Store.
func (r *REST) GetCurso(ctx context.Context, key string) (*models.Curso, error) {
	if key == "" {
		return nil, errs.NotFound("curso", key)
	}
	raw, err := r.findOne(ctx, "cursos", key)
	if err != nil {
		return nil, fmt.Errorf("failed to load curso %s: %w", key, err)
	}
	if raw == nil {
		return nil, errs.NotFound("curso", key)
	}
	return r.decodeCurso(raw)
}

// FindCursos implements Store.
func (r *REST) FindCursos(ctx context.Context, filter CursoFilter, page Page) (*CursoPage, error) {
	page = page.Normalize(0)

	q := url.Values{}
	q.Set("pagination[page]", strconv.Itoa(page.Number))
	q.Set("pagination[pageSize]", strconv.Itoa(page.Size))
	q.Set("sort", "id:asc")
	q.Set("populate", "*")
	if filter.ColegioID != nil {
		q.Set("filters[colegio][id][$eq]", strconv.FormatUint(uint64(*filter.ColegioID), 10))
	}
	if filter.Anio != nil {
		q.Set("filters[anio][$eq]", strconv.Itoa(*filter.Anio))
	}

	env, err := r.get(ctx, "/cursos", q)
	if err != nil {
		return nil, fmt.Errorf("failed to query cursos: %w", err)
	}
	list, err := entries(env)
	if err != nil {
		return nil, err
	}

	result := &CursoPage{Page: page, Items: make([]models.Curso, 0, len(list))}
	for _, raw := range list {
		c, err := r.decodeCurso(raw)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, *c)
	}
	if env != nil {
		result.HasMore = page.Number < env.Meta.Pagination.PageCount
	}
	return result, nil
}

// SaveVersions implements Store. The current entry is re-read first so a
// concurrent writer surfaces as errs.ErrConflict.
func (r *REST) SaveVersions(ctx context.Context, id uint, expectedRevision int64, versions []models.MaterialVersion) (int64, error) {
	key := strconv.FormatUint(uint64(id), 10)
	current, err := r.GetCurso(ctx, key)
	if err != nil {
		return 0, err
	}
	if current.Revision != expectedRevision {
		return 0, fmt.Errorf("curso %d changed since revision %d: %w", id, expectedRevision, errs.ErrConflict)
	}

	if versions == nil {
		versions = []models.MaterialVersion{}
	}
	env, err := r.put(ctx, "/cursos/"+key, map[string]any{"versiones_materiales": versions})
	if errors.Is(err, errs.ErrNotFound) {
		return 0, errs.NotFound("curso", key)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to save versions of curso %d: %w", id, err)
	}

	list, err := entries(env)
	if err != nil || len(list) == 0 {
		return expectedRevision + 1, nil
	}
	saved, err := r.decodeCurso(list[0])
	if err != nil || saved.Revision == expectedRevision {
		return expectedRevision + 1, nil
	}
	return saved.Revision, nil
}

// UpdateCurso implements Store.
func (r *REST) UpdateCurso(ctx context.Context, id uint, update CursoUpdate) error {
	if update.Empty() {
		return nil
	}

	data := update.Fields()
	if colegio, ok := data["colegio_id"]; ok {
		delete(data, "colegio_id")
		data["colegio"] = colegio
	}
	if fecha, ok := data["fecha_revision"].(time.Time); ok {
		data["fecha_revision"] = fecha.UTC().Format(time.RFC3339)
	}

	key := strconv.FormatUint(uint64(id), 10)
	_, err := r.put(ctx, "/cursos/"+key, data)
	if errors.Is(err, errs.ErrNotFound) {
		return errs.NotFound("curso", key)
	}
	if err != nil {
		return fmt.Errorf("failed to update curso %d: %w", id, err)
	}
	return nil
}

// GetColegio implements Store.
func (r *REST) GetColegio(ctx context.Context, key string) (*models.Colegio, error) {
	if key == "" {
		return nil, errs.NotFound("colegio", key)
	}
	raw, err := r.findOne(ctx, "colegios", key)
	if err != nil {
		return nil, fmt.Errorf("failed to load colegio %s: %w", key, err)
	}
	if raw == nil {
		return nil, errs.NotFound("colegio", key)
	}
	return models.DecodeColegio(raw)
}
