package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/strumworks/guitarshop/internal/persist"
	"github.com/strumworks/guitarshop/internal/shop"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}

// newTestRouter wires the real handlers over a seeded store backed by a
// file gateway in a temp dir, same as main does.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gw := persist.NewFileGateway(filepath.Join(t.TempDir(), "database.json"))
	st, err := shop.Open(context.Background(), gw)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return newRouter(st)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

//
// ===== AUTH =====
//

func TestSignupAndLoginFlow(t *testing.T) {
	r := newTestRouter(t)

	// signup
	w := do(t, r, http.MethodPost, "/signup", `{"email":"jimi@x.com","username":"jimi","password":"purplehaze"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status=%d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Success bool `json:"success"`
		User    struct {
			ID       int    `json:"id"`
			Email    string `json:"email"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !created.Success || created.User.ID != 1 || created.User.Username != "jimi" {
		t.Fatalf("unexpected signup body: %s", w.Body.String())
	}

	// duplicate email ⇒ 409
	w = do(t, r, http.MethodPost, "/signup", `{"email":"jimi@x.com","username":"clone","password":"x"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("dup signup status=%d body=%s", w.Code, w.Body.String())
	}

	// login OK
	w = do(t, r, http.MethodPost, "/login", `{"email":"jimi@x.com","password":"purplehaze"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", w.Code, w.Body.String())
	}

	// wrong password ⇒ 401
	w = do(t, r, http.MethodPost, "/login", `{"email":"jimi@x.com","password":"nope"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status=%d body=%s", w.Code, w.Body.String())
	}

	// unknown email ⇒ 404
	w = do(t, r, http.MethodPost, "/login", `{"email":"ghost@x.com","password":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown email status=%d body=%s", w.Code, w.Body.String())
	}

	// missing fields ⇒ 400
	w = do(t, r, http.MethodPost, "/signup", `{"email":"","username":"x","password":"y"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty email status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestAdminLogin(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/admin/login", `{"email":"admin@guitar.com","password":"admin123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Success bool `json:"success"`
		Admin   struct {
			ID    int    `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"admin"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !got.Success || got.Admin.Name != "Admin" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("admin123")) {
		t.Fatalf("password leaked in response: %s", w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/admin/login", `{"email":"admin@guitar.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

//
// ===== PUBLIC CATALOG =====
//

func TestPublicCatalogReads(t *testing.T) {
	r := newTestRouter(t)

	// seeded catalog
	w := do(t, r, http.MethodGet, "/products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var all []shop.Product
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("seed catalog len=%d, want 10", len(all))
	}

	// GET by id is idempotent: two reads, identical payloads
	w1 := do(t, r, http.MethodGet, "/products/1", "")
	w2 := do(t, r, http.MethodGet, "/products/1", "")
	if w1.Code != http.StatusOK || w1.Body.String() != w2.Body.String() {
		t.Fatalf("reads differ: %s vs %s", w1.Body.String(), w2.Body.String())
	}

	// unknown id ⇒ 404, non-numeric id ⇒ 400
	if w := do(t, r, http.MethodGet, "/products/999", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/products/abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	// category filter, case-insensitive: 6 electric guitars in the seed
	for _, q := range []string{"electric", "Electric", "ELECTRIC"} {
		w := do(t, r, http.MethodGet, "/products/category/"+q, "")
		var got []shop.Product
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if len(got) != 6 {
			t.Fatalf("category %q len=%d, want 6", q, len(got))
		}
	}
}

//
// ===== CHECKOUT =====
//

func TestCheckoutEndpoint(t *testing.T) {
	r := newTestRouter(t)

	// two Strats at 168999 each
	w := do(t, r, http.MethodPost, "/checkout", `{"user_id":1,"cart_items":[{"product_id":1,"quantity":2}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var placed struct {
		Success bool       `json:"success"`
		Order   shop.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &placed); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !placed.Success || placed.Order.ID != 1 || placed.Order.Status != shop.StatusCompleted {
		t.Fatalf("unexpected order: %s", w.Body.String())
	}
	if placed.Order.Total.String() != "337998" {
		t.Fatalf("total=%s, want 337998", placed.Order.Total)
	}

	// stock decremented 5 → 3
	var p shop.Product
	w = do(t, r, http.MethodGet, "/products/1", "")
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if p.Quantity != 3 {
		t.Fatalf("quantity=%d, want 3", p.Quantity)
	}

	// guitar 10 has quantity 1; asking 5 must 409 and leave it at 1
	w = do(t, r, http.MethodPost, "/checkout", `{"user_id":1,"cart_items":[{"product_id":10,"quantity":5}]}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("Guild D-40 Traditional")) {
		t.Fatalf("message must name the product: %s", w.Body.String())
	}
	w = do(t, r, http.MethodGet, "/products/10", "")
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if p.Quantity != 1 {
		t.Fatalf("quantity=%d, want 1 (unchanged)", p.Quantity)
	}

	// unknown product rejects the whole cart
	w = do(t, r, http.MethodPost, "/checkout", `{"user_id":1,"cart_items":[{"product_id":1,"quantity":1},{"product_id":99,"quantity":1}]}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	// empty cart ⇒ 400
	w = do(t, r, http.MethodPost, "/checkout", `{"user_id":1,"cart_items":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	// the one placed order is listed for its user, and only for him
	w = do(t, r, http.MethodGet, "/orders/1", "")
	var orders []shop.Order
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(orders) != 1 || len(orders[0].Items) != 1 {
		t.Fatalf("orders=%s", w.Body.String())
	}
	w = do(t, r, http.MethodGet, "/orders/2", "")
	_ = json.Unmarshal(w.Body.Bytes(), &orders)
	if len(orders) != 0 {
		t.Fatalf("user 2 must have no orders: %s", w.Body.String())
	}
}

//
// ===== ADMIN CRUD =====
//

func TestAdminProductCRUD(t *testing.T) {
	r := newTestRouter(t)

	// create ⇒ id 11 (seed tops out at 10)
	body := `{"name":"Fender Telecaster","price":129999,"quantity":4,"category":"Electric","description":"Workhorse","brand":"Fender","image":"/images/tele.jpg","year":"1952"}`
	w := do(t, r, http.MethodPost, "/admin/products", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Product shop.Product `json:"product"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if created.Product.ID != 11 {
		t.Fatalf("id=%d, want 11", created.Product.ID)
	}

	// partial update: quantity to zero, nothing else moves
	w = do(t, r, http.MethodPut, "/admin/products/11", `{"quantity":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", w.Code, w.Body.String())
	}
	var updated struct {
		Product shop.Product `json:"product"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Product.Quantity != 0 || updated.Product.Name != "Fender Telecaster" || updated.Product.Price.String() != "129999" {
		t.Fatalf("partial update wrong: %s", w.Body.String())
	}

	// negative quantity rejected
	w = do(t, r, http.MethodPut, "/admin/products/11", `{"quantity":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative quantity status=%d body=%s", w.Code, w.Body.String())
	}

	// soldout on a seeded guitar
	w = do(t, r, http.MethodPut, "/admin/products/5/soldout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("soldout status=%d body=%s", w.Code, w.Body.String())
	}
	var p shop.Product
	w = do(t, r, http.MethodGet, "/products/5", "")
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if p.Quantity != 0 || p.Name != "Ibanez JEM77P" {
		t.Fatalf("soldout wrong: %s", w.Body.String())
	}

	// delete returns the removed record and frees the id from reads
	w = do(t, r, http.MethodDelete, "/admin/products/11", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status=%d body=%s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("deleted_product")) {
		t.Fatalf("delete body: %s", w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/products/11", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d after delete", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/admin/products/11", ""); w.Code != http.StatusNotFound {
		t.Fatalf("double delete status=%d", w.Code)
	}

	// create with missing required fields ⇒ 400
	w = do(t, r, http.MethodPost, "/admin/products", `{"name":"Nameless"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestAdminStats(t *testing.T) {
	r := newTestRouter(t)

	_ = do(t, r, http.MethodPost, "/signup", `{"email":"a@x.com","username":"a","password":"pw"}`)
	w := do(t, r, http.MethodPost, "/checkout", `{"user_id":1,"cart_items":[{"product_id":7,"quantity":2}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout status=%d body=%s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/admin/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("stats status=%d body=%s", w.Code, w.Body.String())
	}
	var stats shop.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if stats.TotalOrders != 1 || stats.TotalUsers != 1 || stats.TotalProducts != 10 {
		t.Fatalf("stats: %s", w.Body.String())
	}
	// 2 × 58499
	if stats.TotalRevenue.String() != "116998" {
		t.Fatalf("revenue=%s, want 116998", stats.TotalRevenue)
	}
	if len(stats.Orders) != 1 || len(stats.Users) != 1 {
		t.Fatalf("stats must embed full lists: %s", w.Body.String())
	}
}

//
// ===== LEGACY ALIASES =====
//

func TestLegacyAliasSurface(t *testing.T) {
	r := newTestRouter(t)

	// create-item fills the historical defaults
	w := do(t, r, http.MethodPost, "/create-item", `{"name":"Shop Special","price":9999,"quantity":3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create-item status=%d body=%s", w.Code, w.Body.String())
	}
	var item shop.Product
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if item.ID != 11 || item.Category != "Custom" || item.Brand != "Custom" || item.Year != "2024" {
		t.Fatalf("defaults missing: %s", w.Body.String())
	}

	// update-item is the same partial update
	w = do(t, r, http.MethodPut, fmt.Sprintf("/update-item/%d", item.ID), `{"price":8888}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update-item status=%d body=%s", w.Code, w.Body.String())
	}
	var wrap struct {
		Item shop.Product `json:"item"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &wrap)
	if wrap.Item.Price.String() != "8888" || wrap.Item.Name != "Shop Special" {
		t.Fatalf("update-item wrong: %s", w.Body.String())
	}

	// list-items serves the same catalog
	w = do(t, r, http.MethodGet, "/list-items", "")
	var all []shop.Product
	_ = json.Unmarshal(w.Body.Bytes(), &all)
	if len(all) != 11 {
		t.Fatalf("list-items len=%d, want 11", len(all))
	}

	// delete-item
	w = do(t, r, http.MethodDelete, fmt.Sprintf("/delete-item/%d", item.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete-item status=%d body=%s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodDelete, "/delete-item/42", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

//
// ===== PERSISTENCE ACROSS RESTART =====
//

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	gw := persist.NewFileGateway(filepath.Join(dir, "database.json"))
	st, err := shop.Open(context.Background(), gw)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	r := newRouter(st)

	_ = do(t, r, http.MethodPost, "/signup", `{"email":"a@x.com","username":"a","password":"pw"}`)
	w := do(t, r, http.MethodPost, "/checkout", `{"user_id":1,"cart_items":[{"product_id":2,"quantity":1}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout status=%d body=%s", w.Code, w.Body.String())
	}

	// reopen from the same file, as a restart would
	st2, err := shop.Open(context.Background(), persist.NewFileGateway(filepath.Join(dir, "database.json")))
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	r2 := newRouter(st2)

	var p shop.Product
	w = do(t, r2, http.MethodGet, "/products/2", "")
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if p.Quantity != 2 {
		t.Fatalf("quantity=%d, want 2 after restart", p.Quantity)
	}
	var orders []shop.Order
	w = do(t, r2, http.MethodGet, "/orders/1", "")
	_ = json.Unmarshal(w.Body.Bytes(), &orders)
	if len(orders) != 1 || orders[0].Total.String() != "259999" {
		t.Fatalf("orders after restart: %s", w.Body.String())
	}
}
