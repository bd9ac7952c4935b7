// internal/api/api_integration_test.go
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "storefront/internal"
)

// The integration suite needs a reachable PostgreSQL instance. It only runs
// when STOREFRONT_TEST_DB=1 is set (with the usual DB_* variables pointing
// at a throwaway database); otherwise every test skips.
var (
	testApp    *app.Application
	testServer *httptest.Server
)

const testSchema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	country TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	wallet NUMERIC(20, 2) NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	price NUMERIC(20, 2) NOT NULL,
	stock INTEGER NOT NULL,
	img TEXT NOT NULL,
	store_id BIGINT
);
CREATE TABLE IF NOT EXISTS cart (
	user_id BIGINT NOT NULL REFERENCES users(id),
	product_id BIGINT NOT NULL REFERENCES products(id),
	quantity INTEGER NOT NULL CHECK (quantity >= 1),
	PRIMARY KEY (user_id, product_id)
);
CREATE TABLE IF NOT EXISTS sales (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id),
	product_id BIGINT NOT NULL REFERENCES products(id),
	quantity INTEGER NOT NULL,
	order_date TIMESTAMPTZ NOT NULL,
	store_id BIGINT
);
CREATE TABLE IF NOT EXISTS receipts (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id),
	amount NUMERIC(20, 2) NOT NULL
);
CREATE TABLE IF NOT EXISTS returns (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id),
	product_id BIGINT NOT NULL REFERENCES products(id),
	quantity INTEGER NOT NULL,
	return_date TIMESTAMPTZ NOT NULL
);
`

func TestMain(m *testing.M) {
	if os.Getenv("STOREFRONT_TEST_DB") == "" {
		os.Exit(m.Run()) // Tests skip themselves when testApp is nil
	}

	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "integration-test-secret")
	}
	if os.Getenv("DB_NAME") == "" {
		os.Setenv("DB_NAME", "storedb_test")
	}

	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}

	if _, err := testApp.DB.Exec(testSchema); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create test schema: %v\n", err)
		os.Exit(1)
	}

	testServer = httptest.NewServer(testApp.HTTPHandler)
	defer testServer.Close()

	code := m.Run()

	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

func requireTestDB(t *testing.T) {
	if testApp == nil {
		t.Skip("set STOREFRONT_TEST_DB=1 (and DB_* variables) to run integration tests")
	}
}

func clearDatabase(t *testing.T) {
	// Order is irrelevant with CASCADE, but keep children first for clarity.
	tables := []string{"returns", "receipts", "sales", "cart", "products", "users"}
	for _, table := range tables {
		_, err := testApp.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", table))
		require.NoError(t, err, "Failed to truncate table %s", table)
	}
}

// sessionClient returns an HTTP client with its own cookie jar, so each
// simulated user keeps a separate session.
func sessionClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, path string, body interface{}) *http.Response {
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(testServer.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, client *http.Client, path string, out interface{}) *http.Response {
	resp, err := client.Get(testServer.URL + path)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func signUpAndLogin(t *testing.T, client *http.Client, name, email, role string) {
	resp := postJSON(t, client, "/signup", map[string]string{
		"country": "MX", "name": name, "email": email, "password": "hunter2", "role": role,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, client, "/login", map[string]string{
		"email": email, "password": "hunter2",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func createProduct(t *testing.T, admin *http.Client, title string, price float64, stock int) int64 {
	resp := postJSON(t, admin, "/admin/products", map[string]interface{}{
		"title": title, "price": price, "stock": stock, "img": "/img/" + title + ".png",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var product struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	return product.ID
}

func walletOf(t *testing.T, email string) decimal.Decimal {
	var wallet decimal.Decimal
	require.NoError(t, testApp.DB.Get(&wallet, "SELECT wallet FROM users WHERE email = $1", email))
	return wallet
}

func stockOf(t *testing.T, productID int64) int {
	var stock int
	require.NoError(t, testApp.DB.Get(&stock, "SELECT stock FROM products WHERE id = $1", productID))
	return stock
}

func TestPurchaseAndReturnFlow(t *testing.T) {
	requireTestDB(t)
	clearDatabase(t)

	admin := sessionClient(t)
	signUpAndLogin(t, admin, "Root", "root@example.com", "admin")
	productID := createProduct(t, admin, "lamp", 30.00, 10)

	shopper := sessionClient(t)
	signUpAndLogin(t, shopper, "Ana", "ana@example.com", "")

	// Add the same product twice: one line, quantity 2.
	for i := 0; i < 2; i++ {
		resp := postJSON(t, shopper, "/cart/items", map[string]int64{"product_id": productID})
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var cart struct {
		Items []struct {
			ProductID int64 `json:"product_id"`
			Quantity  int   `json:"quantity"`
		} `json:"items"`
		Wallet decimal.Decimal `json:"wallet"`
		Total  decimal.Decimal `json:"total"`
	}
	resp := getJSON(t, shopper, "/cart", &cart)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.NewFromFloat(60.00)))
	assert.True(t, cart.Wallet.Equal(decimal.NewFromFloat(100.00)))

	// Purchase: wallet 100 - 60 = 40, stock 10 - 2 = 8, cart emptied.
	resp = postJSON(t, shopper, "/purchase", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.True(t, walletOf(t, "ana@example.com").Equal(decimal.NewFromFloat(40.00)))
	assert.Equal(t, 8, stockOf(t, productID))

	var count int
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM cart"))
	assert.Equal(t, 0, count, "cart must be empty after purchase")

	var receiptAmount decimal.Decimal
	require.NoError(t, testApp.DB.Get(&receiptAmount, "SELECT amount FROM receipts LIMIT 1"))
	assert.True(t, receiptAmount.Equal(decimal.NewFromFloat(60.00)))

	// Return the sale: stock restored, sale gone, return recorded.
	var purchases struct {
		Purchases []struct {
			SaleID   int64 `json:"sale_id"`
			Quantity int   `json:"quantity"`
		} `json:"purchases"`
	}
	resp = getJSON(t, shopper, "/purchases", &purchases)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, purchases.Purchases, 1)

	saleID := purchases.Purchases[0].SaleID
	resp = postJSON(t, shopper, fmt.Sprintf("/purchases/%d/return", saleID), nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 10, stockOf(t, productID))
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM sales"))
	assert.Equal(t, 0, count, "sale must be deleted after return")
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM returns"))
	assert.Equal(t, 1, count)
}

func TestInsufficientFunds(t *testing.T) {
	requireTestDB(t)
	clearDatabase(t)

	admin := sessionClient(t)
	signUpAndLogin(t, admin, "Root", "root@example.com", "admin")
	productID := createProduct(t, admin, "tv", 250.00, 5)

	shopper := sessionClient(t)
	signUpAndLogin(t, shopper, "Ana", "ana@example.com", "")

	resp := postJSON(t, shopper, "/cart/items", map[string]int64{"product_id": productID})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, shopper, "/purchase", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

	// Nothing moved: wallet intact, stock intact, cart intact, no receipts.
	assert.True(t, walletOf(t, "ana@example.com").Equal(decimal.NewFromFloat(100.00)))
	assert.Equal(t, 5, stockOf(t, productID))

	var count int
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM cart"))
	assert.Equal(t, 1, count)
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM receipts"))
	assert.Equal(t, 0, count)
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM sales"))
	assert.Equal(t, 0, count)
}

func TestReturnSomeoneElsesSale(t *testing.T) {
	requireTestDB(t)
	clearDatabase(t)

	admin := sessionClient(t)
	signUpAndLogin(t, admin, "Root", "root@example.com", "admin")
	productID := createProduct(t, admin, "mug", 5.00, 10)

	buyer := sessionClient(t)
	signUpAndLogin(t, buyer, "Ana", "ana@example.com", "")
	resp := postJSON(t, buyer, "/cart/items", map[string]int64{"product_id": productID})
	resp.Body.Close()
	resp = postJSON(t, buyer, "/purchase", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saleID int64
	require.NoError(t, testApp.DB.Get(&saleID, "SELECT id FROM sales LIMIT 1"))

	intruder := sessionClient(t)
	signUpAndLogin(t, intruder, "Eve", "eve@example.com", "")
	resp = postJSON(t, intruder, fmt.Sprintf("/purchases/%d/return", saleID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "foreign sale must look missing")

	// The sale is untouched.
	var count int
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM sales"))
	assert.Equal(t, 1, count)
}

func TestConcurrentPurchasesSingleBalance(t *testing.T) {
	requireTestDB(t)
	clearDatabase(t)

	admin := sessionClient(t)
	signUpAndLogin(t, admin, "Root", "root@example.com", "admin")
	productID := createProduct(t, admin, "lamp", 60.00, 100)

	shopper := sessionClient(t)
	signUpAndLogin(t, shopper, "Ana", "ana@example.com", "")
	resp := postJSON(t, shopper, "/cart/items", map[string]int64{"product_id": productID})
	resp.Body.Close()

	// Wallet 100.00 covers one 60.00 purchase, not two. The second request
	// either finds an empty cart or an insufficient balance; it must never
	// drive the wallet negative.
	results := make(chan int, 2)
	for i := 0; i < 2; i++ {
		go func() {
			r := postJSON(t, shopper, "/purchase", nil)
			r.Body.Close()
			results <- r.StatusCode
		}()
	}
	first, second := <-results, <-results

	succeeded := 0
	for _, code := range []int{first, second} {
		if code == http.StatusOK {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one purchase must commit (got %d and %d)", first, second)
	assert.True(t, walletOf(t, "ana@example.com").Equal(decimal.NewFromFloat(40.00)))

	var count int
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM receipts"))
	assert.Equal(t, 1, count)
}

func TestConcurrentPurchasesAmpleBalance(t *testing.T) {
	requireTestDB(t)
	clearDatabase(t)

	admin := sessionClient(t)
	signUpAndLogin(t, admin, "Root", "root@example.com", "admin")
	productID := createProduct(t, admin, "lamp", 30.00, 10)

	shopper := sessionClient(t)
	signUpAndLogin(t, shopper, "Ana", "ana@example.com", "")
	resp := postJSON(t, shopper, "/cart/items", map[string]int64{"product_id": productID})
	resp.Body.Close()

	// Wallet 100.00 covers the 30.00 cart twice over, so the balance check
	// alone cannot reject the loser. The second request must still find the
	// cart already consumed and charge nothing.
	results := make(chan int, 2)
	for i := 0; i < 2; i++ {
		go func() {
			r := postJSON(t, shopper, "/purchase", nil)
			r.Body.Close()
			results <- r.StatusCode
		}()
	}
	first, second := <-results, <-results

	succeeded := 0
	for _, code := range []int{first, second} {
		if code == http.StatusOK {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one purchase must commit (got %d and %d)", first, second)
	assert.True(t, walletOf(t, "ana@example.com").Equal(decimal.NewFromFloat(70.00)), "wallet must be debited once")
	assert.Equal(t, 9, stockOf(t, productID), "stock must decrease once")

	var count int
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM sales"))
	assert.Equal(t, 1, count, "only one set of sales may exist")
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM receipts"))
	assert.Equal(t, 1, count)
}
