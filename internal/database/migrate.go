package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Le schéma est appliqué tel quel à chaque démarrage : uniquement des
// instructions idempotentes. L'index unique (cart_id, product_id) porte
// l'invariant « une ligne par produit et par panier » au niveau stockage,
// et les FK RESTRICT doublent les gardes de suppression applicatives.
const schema = `
CREATE TABLE IF NOT EXISTS collections (
	id                  BIGSERIAL PRIMARY KEY,
	title               TEXT NOT NULL CHECK (title <> ''),
	featured_product_id BIGINT
);

CREATE TABLE IF NOT EXISTS products (
	id            BIGSERIAL PRIMARY KEY,
	title         TEXT NOT NULL CHECK (title <> ''),
	slug          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	unit_price    NUMERIC(6,2) NOT NULL CHECK (unit_price >= 0),
	inventory     INTEGER NOT NULL CHECK (inventory >= 0),
	collection_id BIGINT NOT NULL REFERENCES collections (id) ON DELETE RESTRICT,
	last_update   TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT products_slug_key UNIQUE (slug)
);

ALTER TABLE collections
	DROP CONSTRAINT IF EXISTS collections_featured_product_id_fkey;
ALTER TABLE collections
	ADD CONSTRAINT collections_featured_product_id_fkey
	FOREIGN KEY (featured_product_id) REFERENCES products (id) ON DELETE SET NULL;

CREATE TABLE IF NOT EXISTS reviews (
	id          BIGSERIAL PRIMARY KEY,
	product_id  BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	date        DATE NOT NULL DEFAULT CURRENT_DATE
);

CREATE TABLE IF NOT EXISTS carts (
	id         UUID PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS cart_items (
	id         BIGSERIAL PRIMARY KEY,
	cart_id    UUID NOT NULL REFERENCES carts (id) ON DELETE CASCADE,
	product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
	quantity   INTEGER NOT NULL CHECK (quantity >= 1),
	CONSTRAINT cart_items_cart_id_product_id_key UNIQUE (cart_id, product_id)
);

CREATE TABLE IF NOT EXISTS customers (
	id         BIGSERIAL PRIMARY KEY,
	user_id    TEXT NOT NULL,
	phone      TEXT NOT NULL DEFAULT '',
	birth_date DATE,
	membership CHAR(1) NOT NULL DEFAULT 'B' CHECK (membership IN ('B', 'S', 'G')),
	CONSTRAINT customers_user_id_key UNIQUE (user_id)
);

CREATE TABLE IF NOT EXISTS order_items (
	id         BIGSERIAL PRIMARY KEY,
	order_id   BIGINT NOT NULL,
	product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE RESTRICT,
	quantity   INTEGER NOT NULL CHECK (quantity >= 1),
	unit_price NUMERIC(6,2) NOT NULL
);
`

// Migrate crée les tables du magasin si elles n'existent pas encore.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
