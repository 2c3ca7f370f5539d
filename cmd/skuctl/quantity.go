package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sku-lookup-api/internal/application/dto"
	"github.com/jhoicas/sku-lookup-api/internal/application/lookup"
)

var qtyFlags struct {
	warehouse      string
	logistics      string
	reservations   string
	purchaseOrders string
}

var quantityCmd = &cobra.Command{
	Use:   "quantity <sku_id>",
	Short: "Resumen de existencias, tránsito, reservas y compras de un SKU",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuantity,
}

func init() {
	f := quantityCmd.Flags()
	f.StringVar(&qtyFlags.warehouse, "warehouse", "", "Dataset de existencias (por defecto WAREHOUSE_DATA_URL)")
	f.StringVar(&qtyFlags.logistics, "logistics", "", "Dataset de logística (por defecto LOGISTICS_DATA_URL)")
	f.StringVar(&qtyFlags.reservations, "reservations", "", "Dataset de reservas (por defecto RESERVATION_DATA_URL)")
	f.StringVar(&qtyFlags.purchaseOrders, "purchase-orders", "", "Dataset de órdenes de compra (por defecto PURCHASE_DATA_URL)")
}

func runQuantity(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	e, err := setup(ctx)
	if err != nil {
		return err
	}
	locs := e.locations()
	override(&locs.Warehouse, qtyFlags.warehouse)
	override(&locs.Logistics, qtyFlags.logistics)
	override(&locs.Reservations, qtyFlags.reservations)
	override(&locs.PurchaseOrders, qtyFlags.purchaseOrders)

	sum, err := lookup.NewQuantityUseCase(e.loader, locs, e.log).Details(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), dto.NewQuantityDetailsResponse(sum))
}
