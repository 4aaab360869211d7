package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/omchainkit/omchain/api"
	"github.com/omchainkit/omchain/wallet"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export wallet data",
	Long: `Export your account data including balances, addresses and transaction history.

File formats:
  --csv        Export to CSV format (default)
  --json       Export to JSON format

Files are written to ~/.omchain/exports unless --dir is given.

Examples:
  omchain export                    # Export to CSV (default)
  omchain export --json             # Export to JSON
  omchain export --csv --json       # Export to both formats`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	csvFlag  bool
	jsonFlag bool
	dirFlag  string
)

func init() {
	exportCmd.Flags().BoolVar(&csvFlag, "csv", false, "Export to CSV format")
	exportCmd.Flags().BoolVar(&jsonFlag, "json", false, "Export to JSON format")
	exportCmd.Flags().StringVar(&dirFlag, "dir", "", "Directory to write the export files to")
}

// ExportData is the exported account snapshot
type ExportData struct {
	ExportDate   string            `json:"export_date"`
	Endpoint     string            `json:"endpoint"`
	Username     string            `json:"username"`
	Email        string            `json:"email,omitempty"`
	Balance      string            `json:"balance"`
	Pending      string            `json:"pending_balance"`
	USDValue     string            `json:"usd_value"`
	Addresses    []api.Address     `json:"addresses"`
	Transactions []TransactionData `json:"transactions"`
}

// TransactionData is one exported transaction
type TransactionData struct {
	Hash          string `json:"hash"`
	Amount        string `json:"amount"`
	USDValue      string `json:"usd_value"`
	Direction     string `json:"direction"`
	Confirmations int64  `json:"confirmations"`
	Timestamp     string `json:"timestamp"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if !csvFlag && !jsonFlag {
		csvFlag = true
	}
	out := cmd.OutOrStdout()

	w, _, err := sessionWallet(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "📊 Preparing export data...")
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetDescription("[cyan][1/3][reset] Collecting data..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	bar.Set(0)
	if err := w.GetWalletInfo(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("failed to collect data: %w", err)
	}
	exportData := collectExportData(w.State(), time.Now())

	bar.Set(70)
	bar.Describe("[cyan][2/3][reset] Preparing export files...")
	exportDir, err := prepareExportDirectory()
	if err != nil {
		return fmt.Errorf("failed to prepare export directory: %w", err)
	}

	bar.Set(85)
	bar.Describe("[cyan][3/3][reset] Writing export files...")
	files, err := writeExportFiles(exportData, exportDir, bar)
	if err != nil {
		return fmt.Errorf("failed to write export files: %w", err)
	}

	bar.Set(100)
	bar.Describe("[green][✓][reset] Export completed!")
	bar.Finish()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "📁 Export completed successfully!")
	for _, f := range files {
		fmt.Fprintf(out, "📍 %s\n", f)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "📊 Export Summary:")
	fmt.Fprintf(out, "   Account: %s\n", exportData.Username)
	fmt.Fprintf(out, "   Addresses: %d\n", len(exportData.Addresses))
	fmt.Fprintf(out, "   Transactions: %d\n", len(exportData.Transactions))

	return nil
}

func collectExportData(state wallet.State, now time.Time) *ExportData {
	data := &ExportData{
		ExportDate: now.Format("2006-01-02 15:04:05"),
		Endpoint:   cfg.APIURL,
		Username:   state.Username,
		Email:      state.EmailAddress,
		Balance:    state.Balance.StringFixed(8),
		Pending:    state.PendingBalance.StringFixed(8),
		USDValue:   state.Balance.Mul(state.OMCUSDValue).StringFixed(2),
		Addresses:  state.Addresses,
	}

	for _, tx := range sortTransactions(state.Transactions) {
		direction := "IN"
		if !tx.Incoming() {
			direction = "OUT"
		}

		hash := tx.Hash
		if h, err := tx.TxHash(); err == nil && len(hash) == chainhash.MaxHashStringSize {
			hash = h.String()
		}

		data.Transactions = append(data.Transactions, TransactionData{
			Hash:          hash,
			Amount:        tx.Amount.Abs().StringFixed(8),
			USDValue:      tx.Amount.Abs().Mul(state.OMCUSDValue).StringFixed(2),
			Direction:     direction,
			Confirmations: tx.Confirmations,
			Timestamp:     tx.Date.Format("2006-01-02 15:04:05"),
		})
	}

	return data
}

func prepareExportDirectory() (string, error) {
	exportDir := dirFlag
	if exportDir == "" {
		exportDir = filepath.Join(cfg.DataDir, "exports")
	}

	if err := os.MkdirAll(exportDir, 0700); err != nil {
		return "", err
	}
	return exportDir, nil
}

func writeExportFiles(exportData *ExportData, exportDir string, bar *progressbar.ProgressBar) ([]string, error) {
	base := fmt.Sprintf("omchain_%s_%s", exportData.Username, time.Now().Format("20060102_150405"))
	var files []string

	if csvFlag {
		filename := filepath.Join(exportDir, base+".csv")
		if err := writeFile(filename, func(f io.Writer) error { return writeCSV(f, exportData) }); err != nil {
			return nil, fmt.Errorf("failed to write CSV export: %w", err)
		}
		files = append(files, filename)
		bar.Add(5)
	}

	if jsonFlag {
		filename := filepath.Join(exportDir, base+".json")
		if err := writeFile(filename, func(f io.Writer) error { return writeJSON(f, exportData) }); err != nil {
			return nil, fmt.Errorf("failed to write JSON export: %w", err)
		}
		files = append(files, filename)
		bar.Add(5)
	}

	return files, nil
}

func writeFile(filename string, write func(io.Writer) error) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(w io.Writer, exportData *ExportData) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"Section", "Address/Hash", "Amount (OMC)", "USD Value", "Direction", "Confirmations", "Timestamp"},
		{"Balance", exportData.Username, exportData.Balance, exportData.USDValue, "", "", exportData.ExportDate},
	}
	for _, a := range exportData.Addresses {
		records = append(records, []string{"Address", a.Address, a.Balance.StringFixed(8), "", "", "", ""})
	}
	for _, tx := range exportData.Transactions {
		records = append(records, []string{
			"Transaction", tx.Hash, tx.Amount, tx.USDValue, tx.Direction,
			strconv.FormatInt(tx.Confirmations, 10), tx.Timestamp,
		})
	}

	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return cw.Error()
}

func writeJSON(w io.Writer, exportData *ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData)
}
