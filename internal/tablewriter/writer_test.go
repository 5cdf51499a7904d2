package tablewriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/receipt-analyzer/internal/config"
	"github.com/ginjaninja78/receipt-analyzer/internal/receipt"
)

const sample = "注文番号ABCDE-1234567の領収書\n" +
	"ショップ太郎様\n" +
	"注文日: 2024年03月05日\n" +
	"注文商品 価格\n" +
	"テスト商品A 12,000円\n" +
	"単価(税込) 12,000円\n" +
	"合計金額(税込) 12,000円\n" +
	"支払い内訳\n" +
	"PayPay（残高） 12,000円\n" +
	"税率別内訳 税込金額 消費税額\n"

func sampleRecords() []receipt.Record {
	ok := receipt.Extract(sample).Record
	ok.SourceFile = "a.pdf"
	ok.FileName = receipt.SynthesizeFileName(ok)

	bad := receipt.Extract("").Record
	bad.SourceFile = "b.pdf"
	bad.FileName = receipt.SynthesizeFileName(bad)

	return []receipt.Record{ok, bad}
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 30, 22, 0, time.Local)
	assert.Equal(t, "list_20240305_1430.csv", FileName(ts, "csv"))
	assert.Equal(t, "list_20240305_1430.xlsx", FileName(ts, "xlsx"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, receipt.Columns, rows[0])
	assert.Equal(t, []string{
		"ABCDE-1234567", "ヤフショ", "ショップ太郎", "2024/03/05", "2024/03", "12000",
		"PayPay（残高）", "12000", "", "", "", "",
		"テスト商品A 12,000円", "a.pdf",
		"2024-03-05_領収書_仕入_ショップ太郎_PayPay（残高）12000円_ABCDE-1234567.pdf",
	}, rows[1])
	assert.Equal(t, "ERROR", rows[2][0])
	assert.Equal(t, "ERROR", rows[2][6])
	assert.Equal(t, "b.pdf", rows[2][13])
	assert.Equal(t, "ERROR", rows[2][14])
}

func TestWrite(t *testing.T) {
	ts := time.Date(2024, 3, 5, 9, 7, 0, 0, time.Local)

	t.Run("csv", func(t *testing.T) {
		dir := t.TempDir()
		path, err := Write(dir, config.FormatCSV, ts, sampleRecords())

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "list_20240305_0907.csv"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "ショップ太郎")
	})

	t.Run("xlsx", func(t *testing.T) {
		dir := t.TempDir()
		path, err := Write(dir, config.FormatXLSX, ts, sampleRecords())
		require.NoError(t, err)

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(SheetName)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, receipt.Columns, rows[0])
		assert.Equal(t, "ABCDE-1234567", rows[1][0])
		assert.Equal(t, "ERROR", rows[2][0])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Write(t.TempDir(), "json", ts, nil)
		assert.Error(t, err)
	})
}
