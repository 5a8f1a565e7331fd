package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/strumworks/guitarshop/internal/shop"
)

//
// ===== REQUEST PAYLOADS =====
//

// SignupRequest payload of user registration.
// swagger:model SignupRequest
type SignupRequest struct {
	Email    string `json:"email"    example:"jimi@hendrix.com"`
	Username string `json:"username" example:"jimi"`
	Password string `json:"password" example:"purplehaze"`
}

// LoginRequest payload for user and admin login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateProductRequest payload of catalog creation. Price and quantity are
// pointers so a missing field is distinguishable from an explicit zero.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string           `json:"name"        example:"Fender Telecaster"`
	Price       *decimal.Decimal `json:"price"       example:"129999"`
	Quantity    *int             `json:"quantity"    example:"4"`
	Category    string           `json:"category"    example:"Electric"`
	Description string           `json:"description"`
	Brand       string           `json:"brand"       example:"Fender"`
	Image       string           `json:"image"`
	Year        string           `json:"year"        example:"1952"`
}

// UpdateProductRequest payload of partial update: only supplied fields
// change, explicit zeros included.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Brand       *string          `json:"brand"`
	Image       *string          `json:"image"`
	Year        *string          `json:"year"`
}

// CheckoutRequest payload of order placement.
// swagger:model CheckoutRequest
type CheckoutRequest struct {
	UserID    int             `json:"user_id"`
	CartItems []shop.CartLine `json:"cart_items"`
}

// CreateItemRequest is the legacy alias payload; missing catalog fields
// are filled with the historical defaults.
type CreateItemRequest struct {
	Name     string           `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
}

// UpdateItemRequest is the legacy alias partial update.
type UpdateItemRequest struct {
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
}

// userView is what auth responses expose of a user; the stored password
// never leaves the process.
type userView struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type adminView struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

//
// ===== ERROR MAPPING =====
//

func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"success": false, "message": msg})
}

// failFrom maps the store's error taxonomy onto distinct statuses while
// keeping the human-readable message in the body.
func failFrom(c *gin.Context, err error, notFoundMsg string) {
	var ins *shop.InsufficientStockError
	switch {
	case errors.As(err, &ins):
		fail(c, http.StatusConflict, "Insufficient stock for "+ins.Product)
	case errors.Is(err, shop.ErrNotFound):
		fail(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, shop.ErrEmailTaken):
		fail(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, shop.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

//
// ===== AUTH =====
//

func signupHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in SignupRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if in.Email == "" || in.Username == "" || in.Password == "" {
			fail(c, http.StatusBadRequest, "email, username and password are required")
			return
		}
		u, err := st.Signup(c.Request.Context(), in.Email, in.Username, in.Password)
		if err != nil {
			failFrom(c, err, "User not found")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"success": true,
			"user":    userView{ID: u.ID, Email: u.Email, Username: u.Username},
		})
	}
}

func loginHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in LoginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		// Plain equality check by design of this system; no token issued.
		u, err := st.Login(in.Email, in.Password)
		if errors.Is(err, shop.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "Invalid password")
			return
		}
		if err != nil {
			failFrom(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"success": true,
			"user":    userView{ID: u.ID, Email: u.Email, Username: u.Username},
		})
	}
}

func adminLoginHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in LoginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		a, err := st.AdminLogin(in.Email, in.Password)
		if err != nil {
			fail(c, http.StatusUnauthorized, "Invalid admin credentials")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Admin login successful",
			"success": true,
			"admin":   adminView{ID: a.ID, Email: a.Email, Name: a.Name},
		})
	}
}

//
// ===== CATALOG =====
//

func listProductsHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, st.Products())
	}
}

func getProductHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		p, err := st.Product(id)
		if err != nil {
			failFrom(c, err, "Product not found")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func productsByCategoryHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, st.ProductsByCategory(c.Param("category")))
	}
}

func createProductHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in CreateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if in.Name == "" || in.Category == "" || in.Brand == "" || in.Price == nil || in.Quantity == nil {
			fail(c, http.StatusBadRequest, "name, category, brand, price and quantity are required")
			return
		}
		if *in.Quantity < 0 {
			fail(c, http.StatusBadRequest, "quantity must be non-negative")
			return
		}
		if in.Price.IsNegative() {
			fail(c, http.StatusBadRequest, "price must be non-negative")
			return
		}
		np := shop.NewProduct{
			Name:        in.Name,
			Category:    in.Category,
			Price:       *in.Price,
			Quantity:    *in.Quantity,
			Image:       in.Image,
			Description: in.Description,
			Brand:       in.Brand,
			Year:        in.Year,
		}
		if np.Image == "" {
			np.Image = "🎸"
		}
		if np.Year == "" {
			np.Year = "2024"
		}
		p, err := st.CreateProduct(c.Request.Context(), np)
		if err != nil {
			failFrom(c, err, "Product not found")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Product created successfully",
			"success": true,
			"product": p,
		})
	}
}

func updateProductHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in UpdateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if in.Quantity != nil && *in.Quantity < 0 {
			fail(c, http.StatusBadRequest, "quantity must be non-negative")
			return
		}
		if in.Price != nil && in.Price.IsNegative() {
			fail(c, http.StatusBadRequest, "price must be non-negative")
			return
		}
		p, err := st.UpdateProduct(c.Request.Context(), id, shop.ProductPatch{
			Name:        in.Name,
			Category:    in.Category,
			Price:       in.Price,
			Quantity:    in.Quantity,
			Image:       in.Image,
			Description: in.Description,
			Brand:       in.Brand,
			Year:        in.Year,
		})
		if err != nil {
			failFrom(c, err, "Product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Product updated successfully",
			"success": true,
			"product": p,
		})
	}
}

func deleteProductHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		p, err := st.DeleteProduct(c.Request.Context(), id)
		if err != nil {
			failFrom(c, err, "Product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":         "Product deleted successfully",
			"success":         true,
			"deleted_product": p,
		})
	}
}

func soldOutHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		p, err := st.MarkSoldOut(c.Request.Context(), id)
		if err != nil {
			failFrom(c, err, "Product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Product marked as sold out",
			"success": true,
			"product": p,
		})
	}
}

//
// ===== ORDERS =====
//

func checkoutHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in CheckoutRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if len(in.CartItems) == 0 {
			fail(c, http.StatusBadRequest, "cart is empty")
			return
		}
		for _, ln := range in.CartItems {
			if ln.Quantity <= 0 {
				fail(c, http.StatusBadRequest, "quantity must be positive")
				return
			}
		}
		order, err := st.Checkout(c.Request.Context(), in.UserID, in.CartItems)
		if err != nil {
			failFrom(c, err, "Product not found")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully",
			"success": true,
			"order":   order,
		})
	}
}

func userOrdersHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, st.OrdersByUser(userID))
	}
}

func adminStatsHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, st.Stats())
	}
}

//
// ===== LEGACY ALIASES =====
//

func createItemHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in CreateItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if in.Name == "" || in.Price == nil || in.Quantity == nil {
			fail(c, http.StatusBadRequest, "name, price and quantity are required")
			return
		}
		if *in.Quantity < 0 || in.Price.IsNegative() {
			fail(c, http.StatusBadRequest, "price and quantity must be non-negative")
			return
		}
		p, err := st.CreateProduct(c.Request.Context(), shop.NewProduct{
			Name:        in.Name,
			Category:    "Custom",
			Price:       *in.Price,
			Quantity:    *in.Quantity,
			Image:       "🎸",
			Description: "Custom guitar",
			Brand:       "Custom",
			Year:        "2024",
		})
		if err != nil {
			failFrom(c, err, "Item not found")
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateItemHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var in UpdateItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if in.Quantity != nil && *in.Quantity < 0 {
			fail(c, http.StatusBadRequest, "quantity must be non-negative")
			return
		}
		if in.Price != nil && in.Price.IsNegative() {
			fail(c, http.StatusBadRequest, "price must be non-negative")
			return
		}
		p, err := st.UpdateProduct(c.Request.Context(), id, shop.ProductPatch{
			Name:     in.Name,
			Price:    in.Price,
			Quantity: in.Quantity,
		})
		if err != nil {
			failFrom(c, err, "Item not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully", "item": p})
	}
}

func deleteItemHandler(st *shop.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		p, err := st.DeleteProduct(c.Request.Context(), id)
		if err != nil {
			failFrom(c, err, "Item not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully", "item": p})
	}
}
