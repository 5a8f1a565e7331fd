package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/strumworks/guitarshop/internal/shop"
)

// PGGateway keeps the same whole-snapshot contract as the file store but
// on PostgreSQL: a flush replaces every row inside one transaction, so a
// failure mid-flush rolls back and the previous snapshot stays intact.
type PGGateway struct {
	db *pgxpool.Pool
}

func NewPGGateway(db *pgxpool.Pool) *PGGateway { return &PGGateway{db: db} }

const pgSchema = `
CREATE TABLE IF NOT EXISTS users (
	id       INT PRIMARY KEY,
	email    TEXT NOT NULL UNIQUE,
	username TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS admins (
	id       INT PRIMARY KEY,
	email    TEXT NOT NULL,
	password TEXT NOT NULL,
	name     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS guitars (
	id          INT PRIMARY KEY,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL,
	price       NUMERIC NOT NULL,
	quantity    INT NOT NULL CHECK (quantity >= 0),
	image       TEXT NOT NULL,
	description TEXT NOT NULL,
	brand       TEXT NOT NULL,
	year        TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS orders (
	id      INT PRIMARY KEY,
	user_id INT NOT NULL,
	total   NUMERIC NOT NULL,
	status  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS order_items (
	order_id   INT NOT NULL REFERENCES orders(id),
	line_no    INT NOT NULL,
	product_id INT NOT NULL,
	name       TEXT NOT NULL,
	price      NUMERIC NOT NULL,
	quantity   INT NOT NULL,
	subtotal   NUMERIC NOT NULL,
	PRIMARY KEY (order_id, line_no)
);
`

// Init ensures the schema exists.
func (g *PGGateway) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := g.db.Exec(ctx, pgSchema)
	return err
}

// Load reads the whole working set back. A database with no rows at all
// is a fresh install and yields the seed snapshot, mirroring the absent
// file case.
func (g *PGGateway) Load(ctx context.Context) (shop.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var snap shop.Snapshot

	rows, err := g.db.Query(ctx, `SELECT id, email, username, password FROM users ORDER BY id`)
	if err != nil {
		return shop.Snapshot{}, err
	}
	snap.Users = []shop.User{}
	for rows.Next() {
		var u shop.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.Password); err != nil {
			rows.Close()
			return shop.Snapshot{}, err
		}
		snap.Users = append(snap.Users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return shop.Snapshot{}, err
	}

	rows, err = g.db.Query(ctx, `SELECT id, email, password, name FROM admins ORDER BY id`)
	if err != nil {
		return shop.Snapshot{}, err
	}
	snap.Admins = []shop.Admin{}
	for rows.Next() {
		var a shop.Admin
		if err := rows.Scan(&a.ID, &a.Email, &a.Password, &a.Name); err != nil {
			rows.Close()
			return shop.Snapshot{}, err
		}
		snap.Admins = append(snap.Admins, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return shop.Snapshot{}, err
	}

	rows, err = g.db.Query(ctx, `
		SELECT id, name, category, price::text, quantity, image, description, brand, year
		FROM guitars ORDER BY id`)
	if err != nil {
		return shop.Snapshot{}, err
	}
	snap.Products = []shop.Product{}
	for rows.Next() {
		var p shop.Product
		var price string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &price, &p.Quantity,
			&p.Image, &p.Description, &p.Brand, &p.Year); err != nil {
			rows.Close()
			return shop.Snapshot{}, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			rows.Close()
			return shop.Snapshot{}, fmt.Errorf("guitar %d price: %w", p.ID, err)
		}
		snap.Products = append(snap.Products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return shop.Snapshot{}, err
	}

	snap.Orders, err = g.loadOrders(ctx)
	if err != nil {
		return shop.Snapshot{}, err
	}

	if len(snap.Users) == 0 && len(snap.Admins) == 0 &&
		len(snap.Products) == 0 && len(snap.Orders) == 0 {
		return shop.Seed(), nil
	}
	return snap, nil
}

func (g *PGGateway) loadOrders(ctx context.Context) ([]shop.Order, error) {
	rows, err := g.db.Query(ctx, `SELECT id, user_id, total::text, status FROM orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	orders := []shop.Order{}
	byID := make(map[int]int)
	for rows.Next() {
		var o shop.Order
		var total string
		if err := rows.Scan(&o.ID, &o.UserID, &total, &o.Status); err != nil {
			rows.Close()
			return nil, err
		}
		if o.Total, err = decimal.NewFromString(total); err != nil {
			rows.Close()
			return nil, fmt.Errorf("order %d total: %w", o.ID, err)
		}
		o.Items = []shop.OrderItem{}
		byID[o.ID] = len(orders)
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = g.db.Query(ctx, `
		SELECT order_id, product_id, name, price::text, quantity, subtotal::text
		FROM order_items ORDER BY order_id, line_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var orderID int
		var it shop.OrderItem
		var price, subtotal string
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &price, &it.Quantity, &subtotal); err != nil {
			return nil, err
		}
		if it.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("order %d item price: %w", orderID, err)
		}
		if it.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("order %d item subtotal: %w", orderID, err)
		}
		i, ok := byID[orderID]
		if !ok {
			return nil, fmt.Errorf("order_items row for unknown order %d", orderID)
		}
		orders[i].Items = append(orders[i].Items, it)
	}
	return orders, rows.Err()
}

// Flush rewrites every table from the snapshot in one transaction.
func (g *PGGateway) Flush(ctx context.Context, snap shop.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := g.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range []string{
		`DELETE FROM order_items`, `DELETE FROM orders`,
		`DELETE FROM guitars`, `DELETE FROM admins`, `DELETE FROM users`,
	} {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	for _, u := range snap.Users {
		if _, err := tx.Exec(ctx, `
			INSERT INTO users (id, email, username, password) VALUES ($1,$2,$3,$4)
		`, u.ID, u.Email, u.Username, u.Password); err != nil {
			return err
		}
	}
	for _, a := range snap.Admins {
		if _, err := tx.Exec(ctx, `
			INSERT INTO admins (id, email, password, name) VALUES ($1,$2,$3,$4)
		`, a.ID, a.Email, a.Password, a.Name); err != nil {
			return err
		}
	}
	for _, p := range snap.Products {
		if _, err := tx.Exec(ctx, `
			INSERT INTO guitars (id, name, category, price, quantity, image, description, brand, year)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, p.ID, p.Name, p.Category, p.Price.String(), p.Quantity,
			p.Image, p.Description, p.Brand, p.Year); err != nil {
			return err
		}
	}
	for _, o := range snap.Orders {
		if _, err := tx.Exec(ctx, `
			INSERT INTO orders (id, user_id, total, status) VALUES ($1,$2,$3,$4)
		`, o.ID, o.UserID, o.Total.String(), o.Status); err != nil {
			return err
		}
		for n, it := range o.Items {
			if _, err := tx.Exec(ctx, `
				INSERT INTO order_items (order_id, line_no, product_id, name, price, quantity, subtotal)
				VALUES ($1,$2,$3,$4,$5,$6,$7)
			`, o.ID, n, it.ProductID, it.Name, it.Price.String(), it.Quantity, it.Subtotal.String()); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}
