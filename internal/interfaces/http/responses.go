package http

import (
	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// Conversores entidad -> DTO compartidos por los handlers.

func toTransferResponse(t *entity.Transfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:              t.ID,
		BatchID:         t.BatchID,
		SenderStoreID:   t.SenderStoreID,
		ReceiverStoreID: t.ReceiverStoreID,
		Quantity:        t.Quantity,
		Price:           t.Price,
		Batch:           t.Batch,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
	}
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           s.ID,
		BatchID:      s.BatchID,
		UserID:       s.UserID,
		Quantity:     s.Quantity,
		TotalPrice:   s.TotalPrice,
		PatientID:    s.PatientID,
		CustomerName: s.CustomerName,
		StoreID:      s.StoreID,
		CreatedAt:    s.CreatedAt,
	}
}

func toCreditSaleResponse(s *entity.CreditSale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:               s.ID,
		BatchID:          s.BatchID,
		UserID:           s.UserID,
		Quantity:         s.Quantity,
		TotalPrice:       s.TotalPrice,
		PatientID:        s.PatientID,
		CustomerName:     s.CustomerName,
		StoreID:          s.StoreID,
		CreditCustomerID: s.CreditCustomerID,
		PaymentStatus:    s.PaymentStatus,
		CreatedAt:        s.CreatedAt,
	}
}

func toBrandResponse(b *entity.Brand) dto.BrandResponse {
	return dto.BrandResponse{
		ID:           b.ID,
		Name:         b.Name,
		Category:     b.Category,
		MinStock:     b.MinStock,
		Quantity:     b.Quantity,
		SellingUnit:  b.SellingUnit,
		SellingPrice: b.SellingPrice,
		StoreID:      b.StoreID,
	}
}

func toBatchResponse(b *entity.ProductBatch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:               b.ID,
		Name:             b.Name,
		BuyingPrice:      b.BuyingPrice,
		Category:         b.Category,
		Quantity:         b.Quantity,
		PurchaseQuantity: b.PurchaseQuantity,
		SupplierID:       b.SupplierID,
		ExpiryDate:       b.ExpiryDate,
		PurchaseInvoice:  b.PurchaseInvoice,
		BrandID:          b.BrandID,
		Batch:            b.Batch,
		StoreID:          b.StoreID,
	}
}

func toMovementResponse(m *entity.Movement, balance int64) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		BatchID:          m.BatchID,
		BrandID:          m.BrandID,
		Name:             m.Name,
		UnitOfMeasure:    m.UnitOfMeasure,
		IssuedQuantity:   m.IssuedQuantity,
		IssuedTo:         m.IssuedTo,
		ReceivedQuantity: m.ReceivedQuantity,
		ReceivedFrom:     m.ReceivedFrom,
		Batch:            m.Batch,
		StoreID:          m.StoreID,
		Remark:           m.Remark,
		Balance:          balance,
		CreatedAt:        m.CreatedAt,
	}
}

func toDamagedResponse(d *entity.DamagedReport) dto.DamagedReportResponse {
	return dto.DamagedReportResponse{
		ID:         d.ID,
		BatchID:    d.BatchID,
		Quantity:   d.Quantity,
		Reason:     d.Reason,
		ReportedBy: d.ReportedBy,
		StoreID:    d.StoreID,
		CreatedAt:  d.CreatedAt,
	}
}

func toCustomerResponse(c *entity.CreditCustomer) dto.CreditCustomerResponse {
	return dto.CreditCustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Balance:     c.Balance,
		IsValid:     c.IsValid,
	}
}

func toBrandResponses(brands []*entity.Brand) []dto.BrandResponse {
	out := make([]dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, toBrandResponse(b))
	}
	return out
}

func toBatchResponses(batches []*entity.ProductBatch) []dto.BatchResponse {
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return out
}
