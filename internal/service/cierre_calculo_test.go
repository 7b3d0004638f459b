package service

import (
	"testing"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var ahoraTest = time.Date(2026, 8, 14, 21, 0, 0, 0, time.Local)

func ventaSimple(total string, metodo string, items ...model.VentaItem) model.Venta {
	return model.Venta{
		ID:         uuid.New(),
		Total:      d(total),
		MetodoPago: metodo,
		Estado:     model.VentaCompletada,
		Items:      items,
	}
}

func TestCalcularCierre_Identidades(t *testing.T) {
	globo := uuid.New()
	piñata := uuid.New()

	datos := datosCierre{
		MontoApertura: d("5000"),
		HoraApertura:  "09:00",
		Usuario:       "Romina",
		Tipo:          model.CierreManual,
		Ahora:         ahoraTest,
		Ventas: []model.Venta{
			ventaSimple("1200", model.MetodoEfectivo,
				model.VentaItem{ProductoID: globo, Titulo: "Globos x50", Cantidad: 2, PrecioUnitario: d("600")}),
			ventaSimple("3500", model.MetodoDebito,
				model.VentaItem{ProductoID: piñata, Titulo: "Piñata unicornio", Cantidad: 1, PrecioUnitario: d("3500")}),
			ventaSimple("800", model.MetodoEfectivo,
				model.VentaItem{ProductoID: globo, Titulo: "Globos x50", Cantidad: 1, PrecioUnitario: d("800")}),
		},
		Gastos: []model.Gasto{
			{Monto: d("300"), MetodoPago: model.MetodoEfectivo, Descripcion: "Hielo"},
			{Monto: d("1000"), MetodoPago: model.MetodoDebito, Descripcion: "Proveedor"},
		},
		Costos: map[uuid.UUID]decimal.Decimal{
			globo:  d("250"),
			piñata: d("2000"),
		},
	}

	c := calcularCierre(datos)

	// SaldoFinal = apertura + ventas efectivo − gastos efectivo
	assert.Equal(t, "6700", c.SaldoFinal.String()) // 5000 + 2000 − 300
	// GananciaNeta = total ventas − costo − gastos
	assert.Equal(t, "5500", c.TotalVentas.String())
	assert.Equal(t, "2750", c.CostoTotal.String()) // 3×250 + 1×2000
	assert.Equal(t, "1300", c.TotalGastos.String())
	assert.Equal(t, "1450", c.GananciaNeta.String())

	// La partición por método es exhaustiva
	suma := decimal.Zero
	for _, v := range c.ResumenMetodos {
		suma = suma.Add(v)
	}
	assert.True(t, suma.Equal(c.TotalVentas))

	assert.Equal(t, 3, c.CantidadVentas)
	assert.Equal(t, "1833.33", c.TicketPromedio.String())
	assert.Equal(t, "2026-08-14", c.Fecha)
	assert.Equal(t, "21:00", c.HoraCierre)
	assert.Equal(t, "09:00", c.HoraApertura)
}

func TestCalcularCierre_MetodoDesconocidoVaAOtros(t *testing.T) {
	datos := datosCierre{
		MontoApertura: decimal.Zero,
		Ahora:         ahoraTest,
		Ventas: []model.Venta{
			ventaSimple("100", "Cheque"),
			ventaSimple("50", model.MetodoOtros),
		},
	}

	c := calcularCierre(datos)

	require.Contains(t, c.ResumenMetodos, model.MetodoOtros)
	assert.Equal(t, "150", c.ResumenMetodos[model.MetodoOtros].String())
	// "Cheque" never gets its own bucket
	assert.NotContains(t, c.ResumenMetodos, "Cheque")
	// Unknown methods are not cash: they must not touch the till balance
	assert.Equal(t, "0", c.SaldoFinal.String())
}

func TestCalcularCierre_ProductoSinCostoAportaCero(t *testing.T) {
	borrado := uuid.New()
	datos := datosCierre{
		Ahora: ahoraTest,
		Ventas: []model.Venta{
			ventaSimple("900", model.MetodoEfectivo,
				model.VentaItem{ProductoID: borrado, Titulo: "Serpentina", Cantidad: 3, PrecioUnitario: d("300")}),
		},
		Costos: map[uuid.UUID]decimal.Decimal{}, // producto ya no está en el catálogo
	}

	c := calcularCierre(datos)

	assert.Equal(t, "0", c.CostoTotal.String())
	assert.Equal(t, "900", c.GananciaNeta.String())
}

func TestCalcularCierre_CicloVacio(t *testing.T) {
	datos := datosCierre{
		MontoApertura: d("2000"),
		Ahora:         ahoraTest,
	}

	c := calcularCierre(datos)

	assert.Equal(t, "2000", c.SaldoFinal.String())
	assert.Equal(t, "0", c.TotalVentas.String())
	assert.Equal(t, "0", c.GananciaNeta.String())
	assert.Equal(t, 0, c.CantidadVentas)
	// División por cero evitada: promedio cero sin ventas
	assert.Equal(t, "0", c.TicketPromedio.String())
	assert.Empty(t, c.ItemsVendidos)
}

func TestCalcularCierre_AgregadoPorProductoEnOrdenDeAparicion(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	datos := datosCierre{
		Ahora: ahoraTest,
		Ventas: []model.Venta{
			ventaSimple("500", model.MetodoEfectivo,
				model.VentaItem{ProductoID: a, Titulo: "Cotillón A", Cantidad: 1, PrecioUnitario: d("200")},
				model.VentaItem{ProductoID: b, Titulo: "Cotillón B", Cantidad: 1, PrecioUnitario: d("300")}),
			ventaSimple("400", model.MetodoEfectivo,
				model.VentaItem{ProductoID: a, Titulo: "Cotillón A", Cantidad: 2, PrecioUnitario: d("200")}),
		},
		Costos: map[uuid.UUID]decimal.Decimal{a: d("100"), b: d("150")},
	}

	c := calcularCierre(datos)

	require.Len(t, c.ItemsVendidos, 2)
	assert.Equal(t, a, c.ItemsVendidos[0].ProductoID)
	assert.Equal(t, 3, c.ItemsVendidos[0].Cantidad)
	assert.Equal(t, "600", c.ItemsVendidos[0].Ingreso.String())
	assert.Equal(t, "300", c.ItemsVendidos[0].Costo.String())
	assert.Equal(t, b, c.ItemsVendidos[1].ProductoID)
}

func TestCalcularCierre_RenglonPremioDescuentaIngreso(t *testing.T) {
	producto := uuid.New()
	premio := uuid.New()
	datos := datosCierre{
		Ahora: ahoraTest,
		Ventas: []model.Venta{
			ventaSimple("800", model.MetodoEfectivo,
				model.VentaItem{ProductoID: producto, Titulo: "Vaso plástico x20", Cantidad: 1, PrecioUnitario: d("1000")},
				model.VentaItem{ProductoID: premio, Titulo: "Descuento fiesta", Cantidad: 1, PrecioUnitario: d("-200"), EsPremio: true}),
		},
		Costos: map[uuid.UUID]decimal.Decimal{producto: d("400")},
	}

	c := calcularCierre(datos)

	assert.Equal(t, "800", c.TotalVentas.String())
	require.Len(t, c.ItemsVendidos, 2)
	assert.Equal(t, "-200", c.ItemsVendidos[1].Ingreso.String())
	assert.Equal(t, "400", c.GananciaNeta.String())
}
