package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const header = "sku,name,description,category,brand,supplier,purchase_price,sale_price,quantity,min_quantity,max_quantity\n"

func TestReadProductRows(t *testing.T) {
	rows, err := readProductRows(strings.NewReader(header +
		"CH010, Crema de noche ,Nutritiva,Cuidado facial,NaturalBeauty,Beauty Wholesale,12.5,25,40,10,100\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "CH010", r.SKU)
	assert.Equal(t, "Crema de noche", r.Name)
	assert.Equal(t, "Cuidado facial", r.Category)
	assert.Equal(t, "12.5", r.Purchase)
	assert.Equal(t, 40, r.Quantity)
	assert.Equal(t, 10, r.Min)
	assert.Equal(t, 100, r.Max)
}

func TestReadProductRows_Latin1(t *testing.T) {
	utf8 := header + "SA010,Sérum Anti-âge,,Soins du visage,LuxeSkin,,20,45,5,2,50\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(utf8))
	require.NoError(t, err)

	rows, err := readProductRows(transform.NewReader(bytes.NewReader(encoded), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sérum Anti-âge", rows[0].Name)
}

func TestReadProductRows_Errores(t *testing.T) {
	_, err := readProductRows(strings.NewReader(header + "X1,Nombre,,,,,1,2,muchos,0,0\n"))
	assert.Error(t, err, "cantidad no numérica")

	_, err = readProductRows(strings.NewReader(header + "X1,Nombre\n"))
	assert.Error(t, err, "columnas incompletas")

	rows, err := readProductRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
