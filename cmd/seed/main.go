// seed aplica las migraciones y carga datos iniciales: usuario admin, proveedores, categorías,
// marcas, etiquetas y productos. El stock inicial de cada producto se registra en el libro de inventario.
//
// Uso: go run ./cmd/seed [-csv productos.csv] [-latin1]
// El CSV opcional tiene cabecera y columnas:
// sku,name,description,category,brand,supplier,purchase_price,sale_price,quantity,min_quantity,max_quantity
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/cosmetitrack-api/internal/application/auth"
	"github.com/jhoicas/cosmetitrack-api/internal/application/dto"
	"github.com/jhoicas/cosmetitrack-api/internal/application/usecase"
	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cosmetitrack-api/pkg/config"
	"github.com/jhoicas/cosmetitrack-api/pkg/logger"
)

const (
	adminEmail    = "admin@cosmetitrack.com"
	adminPassword = "admin123"
)

var seedActor = usecase.Actor{Name: "seed"}

type seeder struct {
	log        *logger.Logger
	auth       *auth.AuthUseCase
	products   *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
	brands     *usecase.BrandUseCase
	tags       *usecase.TagUseCase
	suppliers  *usecase.SupplierUseCase

	// nombre -> ID
	categoryIDs map[string]string
	brandIDs    map[string]string
	tagIDs      map[string]string
	supplierIDs map[string]string
}

func main() {
	csvPath := flag.String("csv", "", "CSV de productos a importar")
	latin1 := flag.Bool("latin1", false, "el CSV está codificado en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	s := &seeder{
		log: log,
		auth: auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
		}),
		products:    usecase.NewProductUseCase(postgres.NewProductRepository(pool), postgres.NewTxRunner(pool)),
		categories:  usecase.NewCategoryUseCase(postgres.NewCategoryRepository(pool)),
		brands:      usecase.NewBrandUseCase(postgres.NewBrandRepository(pool)),
		tags:        usecase.NewTagUseCase(postgres.NewTagRepository(pool)),
		suppliers:   usecase.NewSupplierUseCase(postgres.NewSupplierRepository(pool)),
		categoryIDs: map[string]string{},
		brandIDs:    map[string]string{},
		tagIDs:      map[string]string{},
		supplierIDs: map[string]string{},
	}

	if err := s.seedDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("datos iniciales")
	}

	if *csvPath != "" {
		n, err := s.importCSV(ctx, *csvPath, *latin1)
		if err != nil {
			log.Fatal().Err(err).Str("file", *csvPath).Msg("importar CSV")
		}
		log.Info().Int("products", n).Str("file", *csvPath).Msg("CSV importado")
	}

	log.Info().Msg("base de datos poblada")
}

func (s *seeder) seedDefaults(ctx context.Context) error {
	_, err := s.auth.CreateUser(ctx, dto.CreateUserRequest{
		Email: adminEmail, Password: adminPassword, Name: "Admin", Role: entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		s.log.Info().Str("email", adminEmail).Msg("admin ya existe")
	case err != nil:
		return fmt.Errorf("admin: %w", err)
	}

	suppliers := []dto.SupplierRequest{
		{Name: "Beauty Wholesale", Email: "contact@beautywholesale.com", Phone: "+33123456789", Address: "123 Rue de la Beauté, Paris"},
		{Name: "Cosmetics Direct", Email: "info@cosmeticsdirect.com", Phone: "+33987654321", Address: "456 Avenue des Cosmétiques, Lyon"},
	}
	for _, in := range suppliers {
		if _, err := s.supplierID(ctx, in); err != nil {
			return err
		}
	}
	for _, tag := range []string{"vegano", "hidratante", "larga duración"} {
		if _, err := s.tagID(ctx, tag); err != nil {
			return err
		}
	}

	products := []productRow{
		{SKU: "CH001", Name: "Crème Hydratante", Description: "Crème hydratante pour le visage", Category: "Soins du visage", Brand: "NaturalBeauty", Supplier: "Beauty Wholesale", Purchase: "15.00", Sale: "29.99", Quantity: 50, Min: 10, Max: 200, Tags: []string{"hidratante"}},
		{SKU: "RL001", Name: "Rouge à Lèvres Mat", Description: "Rouge à lèvres longue tenue", Category: "Maquillage", Brand: "GlamourPro", Supplier: "Cosmetics Direct", Purchase: "8.50", Sale: "19.99", Quantity: 75, Min: 15, Max: 300, Tags: []string{"larga duración"}},
		{SKU: "SA001", Name: "Sérum Anti-âge", Description: "Sérum anti-rides concentré", Category: "Soins du visage", Brand: "LuxeSkin", Supplier: "Beauty Wholesale", Purchase: "22.00", Sale: "49.99", Quantity: 30, Min: 8, Max: 120, Tags: []string{"vegano"}},
	}
	for _, row := range products {
		if err := s.createProduct(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

type productRow struct {
	SKU, Name, Description    string
	Category, Brand, Supplier string
	Purchase, Sale            string
	Quantity, Min, Max        int
	Tags                      []string
}

// createProduct crea el producto resolviendo catálogo por nombre. Un SKU existente se omite.
func (s *seeder) createProduct(ctx context.Context, row productRow) error {
	purchase, err := decimal.NewFromString(row.Purchase)
	if err != nil {
		return fmt.Errorf("%s: purchase_price: %w", row.SKU, err)
	}
	sale, err := decimal.NewFromString(row.Sale)
	if err != nil {
		return fmt.Errorf("%s: sale_price: %w", row.SKU, err)
	}
	in := dto.CreateProductRequest{
		SKU:           row.SKU,
		Name:          row.Name,
		Description:   row.Description,
		PurchasePrice: purchase,
		SalePrice:     sale,
		Quantity:      row.Quantity,
		MinQuantity:   row.Min,
		MaxQuantity:   row.Max,
	}
	if row.Category != "" {
		if in.CategoryID, err = s.categoryID(ctx, row.Category); err != nil {
			return err
		}
	}
	if row.Brand != "" {
		if in.BrandID, err = s.brandID(ctx, row.Brand); err != nil {
			return err
		}
	}
	if row.Supplier != "" {
		if in.SupplierID, err = s.supplierID(ctx, dto.SupplierRequest{Name: row.Supplier}); err != nil {
			return err
		}
	}
	for _, tag := range row.Tags {
		id, err := s.tagID(ctx, tag)
		if err != nil {
			return err
		}
		in.TagIDs = append(in.TagIDs, id)
	}

	p, err := s.products.Create(ctx, seedActor, in)
	if errors.Is(err, domain.ErrDuplicate) {
		s.log.Info().Str("sku", row.SKU).Msg("producto ya existe")
		return nil
	}
	if err != nil {
		return fmt.Errorf("producto %s: %w", row.SKU, err)
	}
	s.log.Info().Str("sku", p.SKU).Int("quantity", p.Quantity).Msg("producto creado")
	return nil
}

// importCSV importa productos desde un CSV con cabecera. Devuelve cuántas filas se procesaron.
func (s *seeder) importCSV(ctx context.Context, path string, latin1 bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := readProductRows(r)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		if err := s.createProduct(ctx, row); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func readProductRows(r io.Reader) ([]productRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 11
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	out := make([]productRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		ints := make([]int, 3)
		for j, col := range rec[8:11] {
			n, err := strconv.Atoi(strings.TrimSpace(col))
			if err != nil {
				return nil, fmt.Errorf("fila %d: columna %d: %w", i+2, j+9, err)
			}
			ints[j] = n
		}
		out = append(out, productRow{
			SKU: strings.TrimSpace(rec[0]), Name: strings.TrimSpace(rec[1]), Description: rec[2],
			Category: strings.TrimSpace(rec[3]), Brand: strings.TrimSpace(rec[4]), Supplier: strings.TrimSpace(rec[5]),
			Purchase: strings.TrimSpace(rec[6]), Sale: strings.TrimSpace(rec[7]),
			Quantity: ints[0], Min: ints[1], Max: ints[2],
		})
	}
	return out, nil
}

// ── Catálogo por nombre ──────────────────────────────────────────────────────

func (s *seeder) categoryID(ctx context.Context, name string) (string, error) {
	if id, ok := s.categoryIDs[name]; ok {
		return id, nil
	}
	c, err := s.categories.Create(ctx, dto.CategoryRequest{Name: name})
	if err == nil {
		s.categoryIDs[name] = c.ID
		return c.ID, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return "", fmt.Errorf("categoría %s: %w", name, err)
	}
	list, err := s.categories.List(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range list {
		s.categoryIDs[c.Name] = c.ID
	}
	return s.categoryIDs[name], nil
}

func (s *seeder) brandID(ctx context.Context, name string) (string, error) {
	if id, ok := s.brandIDs[name]; ok {
		return id, nil
	}
	b, err := s.brands.Create(ctx, dto.CategoryRequest{Name: name})
	if err == nil {
		s.brandIDs[name] = b.ID
		return b.ID, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return "", fmt.Errorf("marca %s: %w", name, err)
	}
	list, err := s.brands.List(ctx)
	if err != nil {
		return "", err
	}
	for _, b := range list {
		s.brandIDs[b.Name] = b.ID
	}
	return s.brandIDs[name], nil
}

func (s *seeder) tagID(ctx context.Context, name string) (string, error) {
	if id, ok := s.tagIDs[name]; ok {
		return id, nil
	}
	t, err := s.tags.Create(ctx, dto.TagRequest{Name: name})
	if err == nil {
		s.tagIDs[name] = t.ID
		return t.ID, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return "", fmt.Errorf("etiqueta %s: %w", name, err)
	}
	list, err := s.tags.List(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range list {
		s.tagIDs[t.Name] = t.ID
	}
	return s.tagIDs[name], nil
}

func (s *seeder) supplierID(ctx context.Context, in dto.SupplierRequest) (string, error) {
	if id, ok := s.supplierIDs[in.Name]; ok {
		return id, nil
	}
	sp, err := s.suppliers.Create(ctx, in)
	if err == nil {
		s.supplierIDs[in.Name] = sp.ID
		return sp.ID, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return "", fmt.Errorf("proveedor %s: %w", in.Name, err)
	}
	list, err := s.suppliers.List(ctx, in.Name)
	if err != nil {
		return "", err
	}
	for _, sp := range list {
		s.supplierIDs[sp.Name] = sp.ID
	}
	return s.supplierIDs[in.Name], nil
}
