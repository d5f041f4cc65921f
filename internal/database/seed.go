package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// SeedSampleProducts inserts the demo catalogue, but only when the
// live product count is zero. Safe to run on every start.
func SeedSampleProducts(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products WHERE is_deleted = false`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	const q = `
        INSERT INTO products (code, description, department_code, price, active) VALUES
        ('COCA001', 'Coca-Cola 350ml', '010', 4.50, true),
        ('COCA002', 'Coca-Cola 600ml', '010', 6.90, true),
        ('PEPSI001', 'Pepsi 350ml', '010', 4.20, true),
        ('AGUA001', 'Agua Mineral 500ml', '010', 2.50, true),
        ('SUCO001', 'Suco de Laranja 1L', '010', 8.90, false),

        ('PIZZA001', 'Pizza Margherita Congelada', '020', 15.90, true),
        ('PIZZA002', 'Pizza Calabresa Congelada', '020', 17.50, true),
        ('SORVETE001', 'Sorvete Chocolate 2L', '020', 12.90, true),
        ('HAMBUR001', 'Hamburguer Bovino Congelado', '020', 22.90, true),

        ('LEITE001', 'Leite Integral 1L', '030', 5.90, true),
        ('QUEIJO001', 'Queijo Mussarela 500g', '030', 18.90, true),
        ('IOGURTE001', 'Iogurte Natural 170g', '030', 3.50, true),
        ('MANTEIGA001', 'Manteiga com Sal 200g', '030', 8.90, true),

        ('TOMATE001', 'Tomate kg', '040', 6.90, true),
        ('ALFACE001', 'Alface Americana unidade', '040', 3.50, true),
        ('CENOURA001', 'Cenoura kg', '040', 4.90, true),
        ('BATATA001', 'Batata Inglesa kg', '040', 5.50, true),
        ('CEBOLA001', 'Cebola kg', '040', 4.20, false)`

	if _, err := db.ExecContext(ctx, q); err != nil {
		return err
	}

	log.Info().Msg("sample products seeded")
	return nil
}
