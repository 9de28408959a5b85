// Package analysis ties the decoder, statistics and collaborators together.
//
// The pipeline for one log is:
//
//	log file -> bitstream.LoadLog -> ASCII file + packed file
//	         -> stats.Analyze (bias, entropy, lag bank)
//	         -> stats.Autocorrelate -> render.Renderer (optional)
//	         -> suite.RunAll on the packed file (optional)
//
// Files are independent, so Analyzer.Run spreads them over Config.Workers
// goroutines:
//
//	cfg := analysis.DefaultConfig()
//	cfg.ClockMHz = 1
//	a := analysis.New(cfg, &suite.ExecRunner{Stream: os.Stdout}, render.NewPlot("png"), logger)
//	inputs, _ := a.Inputs()
//	results, err := a.Run(ctx, inputs)
package analysis
