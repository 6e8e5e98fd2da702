package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/wichananm65/skincare-backend/internal/platform/logger"
	"github.com/wichananm65/skincare-backend/internal/product"
	"github.com/wichananm65/skincare-backend/internal/progress"
)

const (
	productsTable = "products"
	progressTable = "user_progress"
)

// RESTStore serves the Store contract from a hosted PostgREST endpoint
// (Supabase). Filters are rendered into PostgREST query operators.
type RESTStore struct {
	baseURL string
	key     string
	client  *fasthttp.Client
	log     *logger.Logger
}

type RESTOption func(*RESTStore)

// WithHTTPClient replaces the transport, e.g. to dial an in-memory listener.
func WithHTTPClient(c *fasthttp.Client) RESTOption {
	return func(s *RESTStore) { s.client = c }
}

// NewRESTStore points at <serviceURL>/rest/v1 and authenticates every
// request with key.
func NewRESTStore(serviceURL, key string, log *logger.Logger, opts ...RESTOption) *RESTStore {
	if log == nil {
		log = logger.NewNop()
	}
	s := &RESTStore{
		baseURL: strings.TrimRight(serviceURL, "/") + "/rest/v1",
		key:     key,
		client:  &fasthttp.Client{Name: "skincare-backend"},
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RESTStore) Backend() string { return BackendSupabase }

func (s *RESTStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

type restProductInsert struct {
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	SkinType     string  `json:"skin_type"`
	Concerns     string  `json:"concerns"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	Description  string  `json:"description"`
	Ingredients  string  `json:"ingredients"`
	PurchaseLink string  `json:"purchase_link"`
	ImageURL     string  `json:"image_url"`
}

// restProgressInsert sends confidence scores as a native JSON value.
type restProgressInsert struct {
	UserID           string                    `json:"user_id"`
	SkinType         string                    `json:"skin_type"`
	AcneSeverity     float64                   `json:"acne_severity"`
	OilinessLevel    float64                   `json:"oiliness_level"`
	SkinTone         string                    `json:"skin_tone"`
	ImagePath        string                    `json:"image_path"`
	ConfidenceScores progress.ConfidenceScores `json:"confidence_scores"`
}

func (s *RESTStore) InsertProduct(ctx context.Context, p product.Product) error {
	body := restProductInsert{
		Name:         p.Name,
		Brand:        p.Brand,
		Category:     p.Category,
		SkinType:     p.SkinType,
		Concerns:     p.Concerns,
		Price:        p.Price,
		Rating:       p.Rating,
		Description:  p.Description,
		Ingredients:  p.Ingredients,
		PurchaseLink: p.PurchaseLink,
		ImageURL:     p.ImageURL,
	}
	return storageErr(s.Backend(), "insert_product", s.insert(ctx, productsTable, body))
}

func (s *RESTStore) GetProducts(ctx context.Context, equal map[string]string) ([]product.Product, error) {
	clauses, err := equalityClauses(equal)
	if err != nil {
		return nil, storageErr(s.Backend(), "get_products", err)
	}
	products, err := s.queryProducts(ctx, clauses)
	return products, storageErr(s.Backend(), "get_products", err)
}

func (s *RESTStore) GetProductsByCriteria(ctx context.Context, f product.Filter) ([]product.Product, error) {
	clauses, err := criteriaClauses(f)
	if err != nil {
		return nil, storageErr(s.Backend(), "get_products_by_criteria", err)
	}
	products, err := s.queryProducts(ctx, clauses)
	return products, storageErr(s.Backend(), "get_products_by_criteria", err)
}

func (s *RESTStore) queryProducts(ctx context.Context, clauses []clause) ([]product.Product, error) {
	params := restParams(clauses)
	params.Set("order", "id.asc")

	var rows []restProduct
	if err := s.query(ctx, productsTable, params, &rows); err != nil {
		return nil, err
	}
	out := make([]product.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toProduct())
	}
	return out, nil
}

func (s *RESTStore) InsertProgress(ctx context.Context, rec progress.Record) error {
	body := restProgressInsert{
		UserID:           rec.UserID,
		SkinType:         rec.SkinType,
		AcneSeverity:     rec.AcneSeverity,
		OilinessLevel:    rec.OilinessLevel,
		SkinTone:         rec.SkinTone,
		ImagePath:        rec.ImagePath,
		ConfidenceScores: rec.ConfidenceScores,
	}
	return storageErr(s.Backend(), "insert_progress", s.insert(ctx, progressTable, body))
}

func (s *RESTStore) GetUserProgress(ctx context.Context, userID string) ([]progress.Record, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("user_id", "eq."+userID)
	params.Set("order", "timestamp.asc,id.asc")

	var rows []restProgress
	if err := s.query(ctx, progressTable, params, &rows); err != nil {
		return nil, storageErr(s.Backend(), "get_user_progress", err)
	}
	onDecodeErr := warnUndecodable(s.log, s.Backend())
	out := make([]progress.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toRecord(onDecodeErr))
	}
	return out, nil
}

// restParams renders clauses as PostgREST horizontal filters. Every key is
// distinct, which PostgREST ANDs together.
func restParams(clauses []clause) url.Values {
	q := url.Values{}
	q.Set("select", "*")
	for _, c := range clauses {
		switch c.op {
		case opEq:
			q.Add(c.column, "eq."+c.values[0])
		case opLTE:
			q.Add(c.column, "lte."+formatNumber(c.num))
		case opGTE:
			q.Add(c.column, "gte."+formatNumber(c.num))
		case opContains:
			q.Add(c.column, "ilike."+ilikePattern(c.values[0]))
		case opIn:
			quoted := make([]string, len(c.values))
			for i, v := range c.values {
				quoted[i] = quoteValue(v)
			}
			q.Add(c.column, "in.("+strings.Join(quoted, ",")+")")
		case opAnyContains:
			ors := make([]string, len(c.values))
			for i, v := range c.values {
				ors[i] = c.column + ".ilike." + quoteValue(ilikePattern(v))
			}
			q.Add("or", "("+strings.Join(ors, ",")+")")
		}
	}
	return q
}

// ilikePattern wraps v in PostgREST's `*` wildcards. Literal `%`, `_` and
// `\` are escaped the same way the SQL renderer escapes them.
func ilikePattern(v string) string {
	return "*" + escapeLike(v) + "*"
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quoteValue double-quotes a value inside in.() and or=() lists so commas,
// dots and parentheses in it are not read as syntax.
func quoteValue(v string) string {
	return `"` + quoteEscaper.Replace(v) + `"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *RESTStore) query(ctx context.Context, table string, params url.Values, dst any) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.baseURL + "/" + table + "?" + params.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)
	s.authorize(req)

	if err := s.do(ctx, req, resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), dst); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}
	return nil
}

func (s *RESTStore) insert(ctx context.Context, table string, row any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode %s row: %w", table, err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.baseURL + "/" + table)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Prefer", "return=minimal")
	s.authorize(req)
	req.SetBodyRaw(body)

	return s.do(ctx, req, resp)
}

func (s *RESTStore) authorize(req *fasthttp.Request) {
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")
}

// do sends req, honouring a context deadline when there is one, and turns
// non-2xx responses into *APIError.
func (s *RESTStore) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = s.client.DoDeadline(req, resp, deadline)
	} else {
		err = s.client.Do(req, resp)
	}
	if err != nil {
		return err
	}
	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}
	return parseAPIError(status, resp.Body())
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var payload struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
		if payload.Details != "" {
			apiErr.Message += ": " + payload.Details
		}
		return apiErr
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		apiErr.Message = msg
	} else {
		apiErr.Message = fasthttp.StatusMessage(status)
	}
	return apiErr
}
