package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/banachtech/painted-wolf/api"
	"github.com/banachtech/painted-wolf/config"
	"github.com/banachtech/painted-wolf/mc"
	"github.com/banachtech/painted-wolf/payoff"
	"github.com/banachtech/painted-wolf/util"
)

var rootCmd = &cobra.Command{
	Use:   "painted-wolf",
	Short: "American option pricing by least-squares Monte Carlo",
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price one American option and report its Greeks",
	Run: func(cmd *cobra.Command, args []string) {
		opt, sim := contractFromFlags(cmd)
		p, err := mc.New(opt, sim)
		if err != nil {
			log.Fatalf("bad contract: %v", err)
		}
		start := time.Now()
		price, stderr, err := p.Value()
		if err != nil {
			log.Fatalf("pricing failed: %v", err)
		}
		greeks, err := p.Greeks()
		if err != nil {
			log.Fatalf("greeks failed: %v", err)
		}
		fmt.Printf("%s spot=%v strike=%v maturity=%vy rate=%v dividend=%v vol=%v\n",
			opt.Kind, opt.Spot, opt.Strike, opt.Maturity, opt.Rate, opt.Dividend, opt.Vol)
		fmt.Printf("price: %.4f (std error %.4f)\n", price, stderr)
		fmt.Printf("delta: %.4f\n", greeks.Delta)
		fmt.Printf("gamma: %.4f\n", greeks.Gamma)
		fmt.Printf("vega:  %.4f\n", greeks.Vega)
		fmt.Printf("rho:   %.4f\n", greeks.Rho)
		fmt.Printf("theta: %.4f\n", greeks.Theta)
		log.Infof("valued in %s", time.Since(start))
	},
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Price a spot/vol/maturity grid of American options",
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := payoff.ParseKind(stringFlag(cmd, "kind"))
		if err != nil {
			log.Fatalf("bad contract: %v", err)
		}
		spots := floatsFlag(cmd, "spots")
		vols := floatsFlag(cmd, "vols")
		maturities := floatsFlag(cmd, "maturities")
		sim := mc.Simulation{
			Steps:         intFlag(cmd, "steps"),
			Paths:         intFlag(cmd, "paths"),
			Seed:          uintFlag(cmd, "seed"),
			DividendDrift: boolFlag(cmd, "dividend-drift"),
			ITMOnly:       boolFlag(cmd, "itm-only"),
		}

		start := time.Now()
		n := len(spots) * len(vols) * len(maturities)
		bar := progressBar(n)
		var prices []float64
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"SPOT", "VOL", "MATURITY", "PRICE", "STD ERROR"})
		table.SetAlignment(tablewriter.ALIGN_CENTER)
		table.SetColumnSeparator("")
		for _, s := range spots {
			for _, v := range vols {
				for _, m := range maturities {
					bar.Describe(fmt.Sprintf("spot %v vol %v T %v\t", s, v, m))
					opt := mc.Option{
						Kind:     kind,
						Spot:     s,
						Strike:   floatFlag(cmd, "strike"),
						Maturity: m,
						Rate:     floatFlag(cmd, "rate"),
						Dividend: floatFlag(cmd, "dividend"),
						Vol:      v,
					}
					price, stderr, err := mc.Engine{}.Value(opt, sim)
					if err != nil {
						log.Fatalf("pricing spot %v vol %v maturity %v failed: %v", s, v, m, err)
					}
					prices = append(prices, price)
					table.Append([]string{
						fmt.Sprintf("%.2f", s),
						fmt.Sprintf("%.2f", v),
						fmt.Sprintf("%.2f", m),
						fmt.Sprintf("%.4f", price),
						fmt.Sprintf("%.4f", stderr),
					})
					bar.Add(1)
				}
			}
		}
		bar.Finish()
		table.Render()

		min, _ := stats.Min(prices)
		mean, _ := stats.Mean(prices)
		max, _ := stats.Max(prices)
		fmt.Printf("min %.4f  mean %.4f  max %.4f\n", min, mean, max)
		log.Infof("priced %d contracts in %s", n, time.Since(start))
	},
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an API key and the matching server-side hash",
	Run: func(cmd *cobra.Command, args []string) {
		prefix, secret, err := util.GenerateToken()
		if err != nil {
			log.Fatalf("error generating key: %v", err)
		}
		apiKey := fmt.Sprintf("%s.%s", prefix, secret)
		hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 14)
		if err != nil {
			log.Fatalf("error hashing key: %v", err)
		}
		fmt.Printf("api key: %s\n", apiKey)
		fmt.Printf("API_KEYS entry: %s:%s\n", prefix, hash)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pricing HTTP service",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}
		if cfg.GinMode != "" {
			gin.SetMode(cfg.GinMode)
		}
		if len(cfg.Keys) == 0 {
			log.Warn("no API keys configured; every request will be rejected")
		}
		server := api.NewServer(cfg, mc.Engine{})
		log.Infof("listening on %s", cfg.ServerAddress)
		if err := server.Start(cfg.ServerAddress); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	},
}

func contractFromFlags(cmd *cobra.Command) (mc.Option, mc.Simulation) {
	kind, err := payoff.ParseKind(stringFlag(cmd, "kind"))
	if err != nil {
		log.Fatalf("bad contract: %v", err)
	}
	opt := mc.Option{
		Kind:     kind,
		Spot:     floatFlag(cmd, "spot"),
		Strike:   floatFlag(cmd, "strike"),
		Maturity: floatFlag(cmd, "maturity"),
		Rate:     floatFlag(cmd, "rate"),
		Dividend: floatFlag(cmd, "dividend"),
		Vol:      floatFlag(cmd, "vol"),
	}
	sim := mc.Simulation{
		Steps:         intFlag(cmd, "steps"),
		Paths:         intFlag(cmd, "paths"),
		Seed:          uintFlag(cmd, "seed"),
		DividendDrift: boolFlag(cmd, "dividend-drift"),
		ITMOnly:       boolFlag(cmd, "itm-only"),
	}
	return opt, sim
}

func stringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		log.Fatalf("error getting %s: %v", name, err)
	}
	return v
}

func floatFlag(cmd *cobra.Command, name string) float64 {
	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		log.Fatalf("error getting %s: %v", name, err)
	}
	return v
}

func floatsFlag(cmd *cobra.Command, name string) []float64 {
	v, err := cmd.Flags().GetFloat64Slice(name)
	if err != nil {
		log.Fatalf("error getting %s: %v", name, err)
	}
	return v
}

func intFlag(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		log.Fatalf("error getting %s: %v", name, err)
	}
	return v
}

func uintFlag(cmd *cobra.Command, name string) uint64 {
	v, err := cmd.Flags().GetUint64(name)
	if err != nil {
		log.Fatalf("error getting %s: %v", name, err)
	}
	return v
}

func boolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		log.Fatalf("error getting %s: %v", name, err)
	}
	return v
}

func progressBar(length int) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(
		length,
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetVisibility(true),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	return bar
}

func main() {
	priceCmd.Flags().String("kind", "put", "option kind: call or put")
	priceCmd.Flags().Float64("spot", 36.0, "spot price of the underlying")
	priceCmd.Flags().Float64("strike", 40.0, "strike price")
	priceCmd.Flags().Float64("maturity", 1.0, "maturity in years")
	priceCmd.Flags().Float64("rate", 0.06, "riskless rate")
	priceCmd.Flags().Float64("dividend", 0.06, "dividend yield")
	priceCmd.Flags().Float64("vol", 0.2, "volatility")
	priceCmd.Flags().Int("steps", 50, "exercise steps per contract")
	priceCmd.Flags().Int("paths", 10000, "simulated paths, must be even")
	priceCmd.Flags().Uint64("seed", 123, "random seed")
	priceCmd.Flags().Bool("dividend-drift", false, "include the dividend yield in the drift")
	priceCmd.Flags().Bool("itm-only", false, "regress in-the-money paths only")

	gridCmd.Flags().String("kind", "put", "option kind: call or put")
	gridCmd.Flags().Float64Slice("spots", []float64{36, 38, 40, 42, 44}, "spot prices")
	gridCmd.Flags().Float64Slice("vols", []float64{0.2, 0.4}, "volatilities")
	gridCmd.Flags().Float64Slice("maturities", []float64{1, 2}, "maturities in years")
	gridCmd.Flags().Float64("strike", 40.0, "strike price")
	gridCmd.Flags().Float64("rate", 0.06, "riskless rate")
	gridCmd.Flags().Float64("dividend", 0.06, "dividend yield")
	gridCmd.Flags().Int("steps", 50, "exercise steps per contract")
	gridCmd.Flags().Int("paths", 1500, "simulated paths, must be even")
	gridCmd.Flags().Uint64("seed", 123, "random seed")
	gridCmd.Flags().Bool("dividend-drift", false, "include the dividend yield in the drift")
	gridCmd.Flags().Bool("itm-only", false, "regress in-the-money paths only")

	rootCmd.AddCommand(priceCmd, gridCmd, keygenCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
