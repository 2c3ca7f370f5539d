package quantity

import "strings"

// Display versión en texto del resumen, tal como se expone al cliente.
type Display struct {
	StockOnHand     string
	StorageBin      string
	InTransit       string
	ShipmentLoc     string
	Reserved        string
	RequirementDate string
	OnPurchase      string
	DeliveryDate    string
}

// Display renderiza el resumen: listas unidas por ", " y "N/A" para ausentes.
func (s *Summary) Display() Display {
	return Display{
		StockOnHand:     s.StockOnHand.String(),
		StorageBin:      joinOrNA(s.StorageBins),
		InTransit:       s.InTransit.String(),
		ShipmentLoc:     joinOrNA(s.ShipmentLocs),
		Reserved:        s.Reserved.String(),
		RequirementDate: orNA(s.RequirementDate),
		OnPurchase:      s.OnPurchase.String(),
		DeliveryDate:    orNA(s.DeliveryDate),
	}
}

func joinOrNA(list []string) string {
	if len(list) == 0 {
		return NotAvailable
	}
	return strings.Join(list, ", ")
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
