package service

import (
	"errors"
	"os"
	"sync"
	"testing"

	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
	"goldshop-api/internal/policy"
	"goldshop-api/internal/repository"
	"goldshop-api/internal/ws"
	"goldshop-api/pkg/database"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// These tests run the full transfer and invoice workflows against a real
// Postgres. Set INTEGRATION_TESTS=1 and point DATABASE_URL (or the DB_*
// variables) at a disposable database.

type testEnv struct {
	db       *gorm.DB
	hub      *ws.Hub
	stock    repository.StockRepository
	transfer TransferService
	invoice  InvoiceService

	admin policy.Actor

	branchID   uint
	warehouse1 uint
	warehouse2 uint
	productID  uint
	sellerID   uint
	customerID uint
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires postgres)")
	}

	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.Branch{}, &model.User{}, &model.Vendor{}, &model.Customer{},
		&model.Seller{}, &model.Warehouse{}, &model.Product{}, &model.StockRow{},
		&model.Invoice{}, &model.InvoiceItem{}, &model.WarehouseTransaction{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`TRUNCATE warehouse_transactions, invoice_items, invoices,
		stock_rows, products, sellers, customers, vendors, warehouses, users, branches
		RESTART IDENTITY CASCADE`).Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	userRepo := repository.NewUserRepo(db)
	branchRepo := repository.NewBranchRepo(db)
	warehouseRepo := repository.NewWarehouseRepo(db)
	vendorRepo := repository.NewVendorRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	sellerRepo := repository.NewSellerRepo(db)
	productRepo := repository.NewProductRepo(db)
	stockRepo := repository.NewStockRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	transferRepo := repository.NewTransferRepo(db)

	env := &testEnv{
		db:    db,
		hub:   hub,
		stock: stockRepo,
	}

	admin := &model.User{Username: "it-admin", Email: "it-admin@test.local", Role: model.RoleAdmin, Enabled: true}
	if err := admin.SetPassword("test-password"); err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := userRepo.Create(admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	env.admin = policy.Actor{ID: admin.ID, Role: model.RoleAdmin}

	branch := &model.Branch{Name: "Downtown"}
	if err := branchRepo.Create(branch); err != nil {
		t.Fatalf("create branch: %v", err)
	}
	env.branchID = branch.ID

	w1 := &model.Warehouse{Code: "W1", BranchID: branch.ID, Cash: decimal.Zero}
	w2 := &model.Warehouse{Code: "W2", BranchID: branch.ID, Cash: decimal.Zero}
	for _, w := range []*model.Warehouse{w1, w2} {
		if err := warehouseRepo.Create(w); err != nil {
			t.Fatalf("create warehouse: %v", err)
		}
	}
	env.warehouse1, env.warehouse2 = w1.ID, w2.ID

	vendor := &model.Vendor{Name: "Aurum Trading"}
	vendor.CreatedByID = &admin.ID
	if err := vendorRepo.Create(vendor); err != nil {
		t.Fatalf("create vendor: %v", err)
	}

	product := &model.Product{
		Material: model.MaterialGold,
		VendorID: vendor.ID,
		Name:     "Gold Ring",
		Weight:   decimal.NewFromInt(5),
		Carat:    decimal.NewFromInt(21),
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product: %v", err)
	}
	env.productID = product.ID

	seller := &model.Seller{Name: "Counter A", BranchID: branch.ID}
	if err := sellerRepo.Create(seller); err != nil {
		t.Fatalf("create seller: %v", err)
	}
	env.sellerID = seller.ID

	customer := &model.Customer{Name: "Walk-in", Phone: "0100000000"}
	customer.CreatedByID = &admin.ID
	if err := customerRepo.Create(customer); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	env.customerID = customer.ID

	env.transfer = NewTransferService(transferRepo, stockRepo, warehouseRepo, productRepo, db, hub)
	env.invoice = NewInvoiceService(invoiceRepo, stockRepo, warehouseRepo, sellerRepo, customerRepo, branchRepo, productRepo, db, hub)

	return env
}

func (e *testEnv) seedStock(t *testing.T, warehouseID uint, qty int64) {
	t.Helper()
	err := e.db.Transaction(func(tx *gorm.DB) error {
		_, err := e.stock.Increment(tx, warehouseID, e.productID, qty, &e.admin.ID)
		return err
	})
	if err != nil {
		t.Fatalf("seed stock: %v", err)
	}
}

func (e *testEnv) quantity(t *testing.T, warehouseID uint) int64 {
	t.Helper()
	qty, err := e.stock.GetQuantity(warehouseID, e.productID)
	if err != nil {
		t.Fatalf("get quantity: %v", err)
	}
	return qty
}

func TestTransferApproveMovesStock(t *testing.T) {
	env := setupEnv(t)
	env.seedStock(t, env.warehouse1, 10)

	transfer, err := env.transfer.Create(env.admin, &CreateTransferRequest{
		ProductID:       env.productID,
		FromWarehouseID: env.warehouse1,
		ToWarehouseID:   env.warehouse2,
		Quantity:        4,
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}
	if transfer.Status != model.TransferPending {
		t.Fatalf("new transfer status = %s, want Pending", transfer.Status)
	}
	// Creation reserves nothing.
	if got := env.quantity(t, env.warehouse1); got != 10 {
		t.Fatalf("source moved on request: %d", got)
	}

	approved, err := env.transfer.Approve(env.admin, transfer.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != model.TransferApproved {
		t.Errorf("status = %s, want Approved", approved.Status)
	}
	if approved.ActionByID == nil || *approved.ActionByID != env.admin.ID {
		t.Errorf("action_by not stamped")
	}
	if got := env.quantity(t, env.warehouse1); got != 6 {
		t.Errorf("source = %d, want 6", got)
	}
	if got := env.quantity(t, env.warehouse2); got != 4 {
		t.Errorf("destination = %d, want 4", got)
	}
}

func TestTransferApproveShortStockStaysPending(t *testing.T) {
	env := setupEnv(t)
	env.seedStock(t, env.warehouse1, 3)

	transfer, err := env.transfer.Create(env.admin, &CreateTransferRequest{
		ProductID:       env.productID,
		FromWarehouseID: env.warehouse1,
		ToWarehouseID:   env.warehouse2,
		Quantity:        6,
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	_, err = env.transfer.Approve(env.admin, transfer.ID)
	if !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}

	// The transaction stays Pending and nothing moved: approval is
	// retryable after a restock.
	reloaded, err := env.transfer.Get(env.admin, transfer.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != model.TransferPending {
		t.Errorf("status = %s, want Pending", reloaded.Status)
	}
	if got := env.quantity(t, env.warehouse1); got != 3 {
		t.Errorf("source = %d, want 3", got)
	}
	if got := env.quantity(t, env.warehouse2); got != 0 {
		t.Errorf("destination = %d, want 0", got)
	}

	// Restock and retry.
	env.seedStock(t, env.warehouse1, 5)
	if _, err := env.transfer.Approve(env.admin, transfer.ID); err != nil {
		t.Fatalf("retry approve: %v", err)
	}
	if got := env.quantity(t, env.warehouse1); got != 2 {
		t.Errorf("source after retry = %d, want 2", got)
	}
}

func TestTransferDoubleApproveRejected(t *testing.T) {
	env := setupEnv(t)
	env.seedStock(t, env.warehouse1, 10)

	transfer, err := env.transfer.Create(env.admin, &CreateTransferRequest{
		ProductID:       env.productID,
		FromWarehouseID: env.warehouse1,
		ToWarehouseID:   env.warehouse2,
		Quantity:        4,
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	if _, err := env.transfer.Approve(env.admin, transfer.ID); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	_, err = env.transfer.Approve(env.admin, transfer.ID)
	if !errors.Is(err, apperr.ErrInvalidStateTransition) {
		t.Fatalf("second approve: want ErrInvalidStateTransition, got %v", err)
	}

	// The stock effect applied exactly once.
	if got := env.quantity(t, env.warehouse1); got != 6 {
		t.Errorf("source = %d, want 6", got)
	}
	if got := env.quantity(t, env.warehouse2); got != 4 {
		t.Errorf("destination = %d, want 4", got)
	}
}

func TestConcurrentApprovalsOneWins(t *testing.T) {
	env := setupEnv(t)
	env.seedStock(t, env.warehouse1, 10)

	// Two competing requests for 6 units each out of 10.
	ids := make([]uint, 2)
	for i := range ids {
		transfer, err := env.transfer.Create(env.admin, &CreateTransferRequest{
			ProductID:       env.productID,
			FromWarehouseID: env.warehouse1,
			ToWarehouseID:   env.warehouse2,
			Quantity:        6,
		})
		if err != nil {
			t.Fatalf("create transfer: %v", err)
		}
		ids[i] = transfer.ID
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			_, results[i] = env.transfer.Approve(env.admin, id)
		}(i, id)
	}
	wg.Wait()

	var approved, short int
	for _, err := range results {
		switch {
		case err == nil:
			approved++
		case errors.Is(err, apperr.ErrInsufficientStock):
			short++
		default:
			t.Fatalf("unexpected approve error: %v", err)
		}
	}
	if approved != 1 || short != 1 {
		t.Fatalf("approved=%d short=%d, want exactly one of each", approved, short)
	}
	if got := env.quantity(t, env.warehouse1); got != 4 {
		t.Errorf("source = %d, want 4", got)
	}
	if got := env.quantity(t, env.warehouse2); got != 6 {
		t.Errorf("destination = %d, want 6", got)
	}
}

func TestSaleInvoiceShortStockPersistsNothing(t *testing.T) {
	env := setupEnv(t)
	env.seedStock(t, env.warehouse1, 3)

	_, err := env.invoice.CreateInvoice(env.admin, &CreateInvoiceRequest{
		Material:        model.MaterialGold,
		WarehouseID:     env.warehouse1,
		SellerID:        env.sellerID,
		BranchID:        env.branchID,
		CustomerID:      env.customerID,
		TransactionType: model.TransactionCash,
		InvoiceType:     model.InvoiceSale,
		Items: []CreateInvoiceItemRequest{
			{ProductID: env.productID, Quantity: 5, Price: decimal.NewFromInt(100)},
		},
	})
	if !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}

	if got := env.quantity(t, env.warehouse1); got != 3 {
		t.Errorf("stock = %d, want 3 (unchanged)", got)
	}
	var invoices int64
	if err := env.db.Model(&model.Invoice{}).Count(&invoices).Error; err != nil {
		t.Fatalf("count invoices: %v", err)
	}
	if invoices != 0 {
		t.Errorf("found %d invoices, want 0", invoices)
	}
}

func TestSaleInvoiceDecrementsStock(t *testing.T) {
	env := setupEnv(t)
	env.seedStock(t, env.warehouse1, 10)

	invoice, err := env.invoice.CreateInvoice(env.admin, &CreateInvoiceRequest{
		Material:        model.MaterialGold,
		WarehouseID:     env.warehouse1,
		SellerID:        env.sellerID,
		BranchID:        env.branchID,
		CustomerID:      env.customerID,
		GoldPrice21:     decimal.NewFromInt(4000),
		TransactionType: model.TransactionCash,
		InvoiceType:     model.InvoiceSale,
		Items: []CreateInvoiceItemRequest{
			{ProductID: env.productID, Quantity: 2, Price: decimal.NewFromInt(150)},
		},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	if got := env.quantity(t, env.warehouse1); got != 8 {
		t.Errorf("stock = %d, want 8", got)
	}
	if !invoice.TotalPrice.Equal(decimal.NewFromInt(300)) {
		t.Errorf("total = %s, want 300", invoice.TotalPrice)
	}
	if len(invoice.Items) != 1 || invoice.Items[0].ItemName != "Gold Ring" {
		t.Errorf("item snapshot missing: %+v", invoice.Items)
	}
}

func TestReturnInvoiceRestoresSoftDeletedStockRow(t *testing.T) {
	env := setupEnv(t)
	env.seedStock(t, env.warehouse1, 2)

	// Soft-delete the ledger row, then book a return against the same
	// key: the dead row comes back instead of a duplicate insert.
	if err := env.db.Where("warehouse_id = ? AND product_id = ?", env.warehouse1, env.productID).
		Delete(&model.StockRow{}).Error; err != nil {
		t.Fatalf("soft delete stock row: %v", err)
	}

	_, err := env.invoice.CreateInvoice(env.admin, &CreateInvoiceRequest{
		Material:        model.MaterialGold,
		WarehouseID:     env.warehouse1,
		SellerID:        env.sellerID,
		BranchID:        env.branchID,
		CustomerID:      env.customerID,
		TransactionType: model.TransactionCash,
		InvoiceType:     model.InvoiceReturnPacking,
		Items: []CreateInvoiceItemRequest{
			{ProductID: env.productID, Quantity: 1, Price: decimal.NewFromInt(90)},
		},
	})
	if err != nil {
		t.Fatalf("return invoice: %v", err)
	}

	var rows int64
	if err := env.db.Unscoped().Model(&model.StockRow{}).
		Where("warehouse_id = ? AND product_id = ?", env.warehouse1, env.productID).
		Count(&rows).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("found %d ledger rows for key, want 1", rows)
	}
	if got := env.quantity(t, env.warehouse1); got != 3 {
		t.Errorf("stock = %d, want 3 (2 restored + 1 returned)", got)
	}
}
