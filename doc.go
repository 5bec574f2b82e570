// Package word2pdf converts Word documents (.doc, .docx) to PDF by driving
// an installed word processor.
//
// # Quick Start
//
// Create a converter and convert one document:
//
//	conv := word2pdf.NewConverter()
//
//	result, err := conv.Convert(ctx, word2pdf.Request{
//	    Source: "report.docx",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Destination, result.Pages)
//
// Without a Destination the PDF is written beside the source with the same
// base name.
//
// # Conversion Sessions
//
// Each conversion is one session:
//
//  1. Launch a private, hidden engine instance
//  2. Open the document read-only
//  3. Export it as PDF with the fixed export profile
//  4. Close the document without saving, then quit the engine
//
// Step 4 runs on every path once the engine is up, including failures and
// cancellation. Teardown errors are logged, never returned. Sessions are
// serialized per Converter, and across processes through a lock file.
//
// # Engines
//
// Two engines are built in:
//
//   - "office": headless LibreOffice (soffice), on every platform
//   - "word": Microsoft Word through COM automation, Windows only
//
// Select one with NewLauncher and WithLauncher:
//
//	launcher, err := word2pdf.NewLauncher("office", "/opt/libreoffice/program/soffice")
//	conv := word2pdf.NewConverter(word2pdf.WithLauncher(launcher))
//
// # Batch Conversion
//
// PlanBatch lists the documents of a folder; ConvertBatch converts them in
// order and never stops on a failed item:
//
//	plan, err := word2pdf.PlanBatch("in", "out", true)
//	report := conv.ConvertBatch(ctx, plan, nil)
//	fmt.Printf("%d ok, %d failed\n", report.Succeeded, report.Failed)
//
// # Progress
//
// Pass a channel to ConvertBatch, or use BackgroundConverter to run on a
// worker goroutine and receive events until the channel is closed:
//
//	bg := word2pdf.NewBackgroundConverter(conv)
//	events, err := bg.StartBatch(ctx, plan)
//	for ev := range events {
//	    fmt.Println(ev.Kind, ev.Source, ev.Stage)
//	}
package word2pdf
