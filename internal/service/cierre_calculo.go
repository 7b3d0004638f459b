package service

import (
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// metodosConocidos son los que reciben bucket propio en el resumen por
// método. Todo lo demás cae en MetodoOtros.
var metodosConocidos = map[string]struct{}{
	model.MetodoEfectivo:    {},
	model.MetodoCredito:     {},
	model.MetodoDebito:      {},
	model.MetodoMercadoPago: {},
	model.MetodoOtros:       {},
}

// datosCierre is everything the closure calculator needs, already
// cycle-scoped by the caller. The calculator itself touches no storage
// and no clock, which is what makes the reconciliation identities
// testable in isolation.
type datosCierre struct {
	MontoApertura decimal.Decimal
	HoraApertura  string
	Usuario       string
	Tipo          string
	Ahora         time.Time

	Ventas []model.Venta
	Gastos []model.Gasto
	// Costos: precio de compra por producto. Un producto ausente (borrado
	// del catálogo después de venderse) aporta costo cero.
	Costos       map[uuid.UUID]decimal.Decimal
	NuevosSocios []model.NuevoSocio
}

// calcularCierre builds the full reconciliation report for one cycle.
//
// Identities it guarantees:
//
//	SaldoFinal   = MontoApertura + ventas Efectivo − gastos Efectivo
//	GananciaNeta = TotalVentas − CostoTotal − TotalGastos
//	TotalVentas  = Σ resumen por método (la partición es exhaustiva)
func calcularCierre(d datosCierre) model.CierreCaja {
	totalVentas := decimal.Zero
	ventasEfectivo := decimal.Zero
	resumen := map[string]decimal.Decimal{}

	// Per-product aggregation keyed by ID, first-seen order preserved so
	// the report is deterministic.
	porProducto := map[uuid.UUID]*model.ItemVendido{}
	var ordenProductos []uuid.UUID
	costoTotal := decimal.Zero

	for _, v := range d.Ventas {
		totalVentas = totalVentas.Add(v.Total)

		metodo := v.MetodoPago
		if _, ok := metodosConocidos[metodo]; !ok {
			metodo = model.MetodoOtros
		}
		resumen[metodo] = resumen[metodo].Add(v.Total)
		if metodo == model.MetodoEfectivo {
			ventasEfectivo = ventasEfectivo.Add(v.Total)
		}

		for _, item := range v.Items {
			agg, ok := porProducto[item.ProductoID]
			if !ok {
				agg = &model.ItemVendido{ProductoID: item.ProductoID, Titulo: item.Titulo}
				porProducto[item.ProductoID] = agg
				ordenProductos = append(ordenProductos, item.ProductoID)
			}
			cantidad := decimal.NewFromInt(int64(item.Cantidad))
			costo := d.Costos[item.ProductoID].Mul(cantidad)

			agg.Cantidad += item.Cantidad
			agg.Ingreso = agg.Ingreso.Add(item.PrecioUnitario.Mul(cantidad))
			agg.Costo = agg.Costo.Add(costo)
			costoTotal = costoTotal.Add(costo)
		}
	}

	totalGastos := decimal.Zero
	gastosEfectivo := decimal.Zero
	for _, g := range d.Gastos {
		totalGastos = totalGastos.Add(g.Monto)
		if g.MetodoPago == model.MetodoEfectivo {
			gastosEfectivo = gastosEfectivo.Add(g.Monto)
		}
	}

	saldoFinal := d.MontoApertura.Add(ventasEfectivo).Sub(gastosEfectivo)
	gananciaNeta := totalVentas.Sub(costoTotal).Sub(totalGastos)

	ticketPromedio := decimal.Zero
	if len(d.Ventas) > 0 {
		ticketPromedio = totalVentas.Div(decimal.NewFromInt(int64(len(d.Ventas)))).Round(2)
	}

	items := make([]model.ItemVendido, 0, len(ordenProductos))
	for _, id := range ordenProductos {
		items = append(items, *porProducto[id])
	}

	return model.CierreCaja{
		Fecha:          d.Ahora.Format("2006-01-02"),
		HoraApertura:   d.HoraApertura,
		HoraCierre:     d.Ahora.Format("15:04"),
		UsuarioNombre:  d.Usuario,
		Tipo:           d.Tipo,
		MontoApertura:  d.MontoApertura,
		TotalVentas:    totalVentas,
		SaldoFinal:     saldoFinal,
		CostoTotal:     costoTotal,
		TotalGastos:    totalGastos,
		GananciaNeta:   gananciaNeta,
		CantidadVentas: len(d.Ventas),
		TicketPromedio: ticketPromedio,
		ResumenMetodos: resumen,
		ItemsVendidos:  items,
		NuevosSocios:   d.NuevosSocios,
		GastosSnapshot: d.Gastos,
		VentasSnapshot: d.Ventas,
		CreatedAt:      d.Ahora,
	}
}
