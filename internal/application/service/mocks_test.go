package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
)

// MockBillStore mocks the BillStore interface
type MockBillStore struct {
	mock.Mock
}

func (m *MockBillStore) List(ctx context.Context) ([]entity.Bill, error) {
	args := m.Called(ctx)
	bills, _ := args.Get(0).([]entity.Bill)
	return bills, args.Error(1)
}

func (m *MockBillStore) Create(ctx context.Context, req *port.UploadRequest) (*port.UploadResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*port.UploadResult)
	return result, args.Error(1)
}

func (m *MockBillStore) Update(ctx context.Context, key string, bill *entity.Bill) (*entity.Bill, error) {
	args := m.Called(ctx, key, bill)
	updated, _ := args.Get(0).(*entity.Bill)
	return updated, args.Error(1)
}

// fakeDocument records what the containers did to the screen
type fakeDocument struct {
	alerts       []string
	inputCleared bool
	modalOpened  bool
	modalURL     string
}

func (d *fakeDocument) Alert(message string) {
	d.alerts = append(d.alerts, message)
}

func (d *fakeDocument) ClearFileInput() {
	d.inputCleared = true
}

func (d *fakeDocument) ShowReceiptModal(fileURL string) {
	d.modalOpened = true
	d.modalURL = fileURL
}

// navigationRecorder records navigation calls
type navigationRecorder struct {
	paths []string
}

func (n *navigationRecorder) Navigate(pathname string) {
	n.paths = append(n.paths, pathname)
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

func fixtureBills() []entity.Bill {
	return []entity.Bill{
		{
			ID:         "47qAXb6fIm2zOKkLzMro",
			Email:      "a@a",
			Type:       "Hôtel et logement",
			Name:       "encore",
			Date:       "2004-04-04",
			Amount:     400,
			Pct:        20,
			VAT:        "80",
			Commentary: "séminaire billed",
			FileURL:    "https://localhost:3456/images/test.jpg",
			FileName:   "preview-facture-free-201801-pdf-1.jpg",
			Status:     "pending",
		},
		{
			ID:       "BeKy5Mo4jkmdfPGYpTxZ",
			Email:    "a@a",
			Type:     "Transports",
			Name:     "test1",
			Date:     "2001-01-01",
			Amount:   100,
			Pct:      20,
			VAT:      "",
			FileURL:  "https://localhost:3456/images/test.jpg",
			FileName: "1592770761.jpeg",
			Status:   "refused",
		},
		{
			ID:       "UIUZtnPQvnbFnB0ozvJh",
			Email:    "a@a",
			Type:     "Services en ligne",
			Name:     "test3",
			Date:     "2003-03-03",
			Amount:   300,
			Pct:      20,
			VAT:      "60",
			FileURL:  "https://localhost:3456/images/test.jpg",
			FileName: "facture-client-php-exportee-dans-document-pdf-enregistre-sur-disque-dur.png",
			Status:   "accepted",
		},
		{
			ID:       "qcCK3SzECmaZAGRrHjaC",
			Email:    "a@a",
			Type:     "Restaurants et bars",
			Name:     "test2",
			Date:     "2002-02-02",
			Amount:   200,
			Pct:      20,
			VAT:      "40",
			FileURL:  "https://localhost:3456/images/test.jpg",
			FileName: "preview-facture-free-201801-pdf-1.jpg",
			Status:   "refused",
		},
	}
}
