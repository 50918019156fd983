package main

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"unicode/utf8"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	flag "github.com/docker/docker/pkg/mflag"

	"github.com/oksent-dev/decision-tree/config"
	"github.com/oksent-dev/decision-tree/export"
	"github.com/oksent-dev/decision-tree/tree"
)

var (
	// input/output files
	dataFile    = flag.String([]string{"d", "-data"}, "", "delimited data file to analyze")
	configFile  = flag.String([]string{"c", "-config"}, "", "yaml run configuration, replaces the other file flags")
	predictFile = flag.String([]string{"p", "-predictions"}, "", "file to output predictions")
	modelFile   = flag.String([]string{"f", "-final_model"}, "", "file to output the fitted model, input when predicting")
	textFile    = flag.String([]string{"-text"}, "", "file to output the tree rendered as text")
	dotFile     = flag.String([]string{"-dot"}, "", "file to output the tree in graphviz dot format")
	svgFile     = flag.String([]string{"-svg"}, "", "file to render the tree as svg, requires graphviz")
	// input parsing params
	delimiter = flag.String([]string{"-delimiter"}, ",", "field delimiter, a single character")
	hasHeader = flag.Bool([]string{"-header"}, false, "treat the first row as attribute names")
	// runtime params
	logLevel   = flag.String([]string{"-log_level"}, "info", "log level: error, warn, info or debug")
	runProfile = flag.Bool([]string{"-profile"}, false, "cpu profile")
)

type runOptions struct {
	dataFile  string
	delimiter rune
	header    bool
	attrNames []string
	textFile  string
	dotFile   string
	svgFile   string
	modelFile string
	logLevel  string
}

func parseRunOpts() (runOptions, error) {
	if *configFile == "" {
		if utf8.RuneCountInString(*delimiter) != 1 {
			return runOptions{}, fmt.Errorf("delimiter must be a single character, have %q", *delimiter)
		}
		d, _ := utf8.DecodeRuneInString(*delimiter)

		return runOptions{
			dataFile:  *dataFile,
			delimiter: d,
			header:    *hasHeader,
			textFile:  *textFile,
			dotFile:   *dotFile,
			svgFile:   *svgFile,
			modelFile: *modelFile,
			logLevel:  *logLevel,
		}, nil
	}

	if *dataFile != "" || *textFile != "" || *dotFile != "" || *svgFile != "" || *modelFile != "" {
		return runOptions{}, fmt.Errorf("-c replaces the file flags, pass one or the other")
	}

	f, err := os.Open(*configFile)
	if err != nil {
		return runOptions{}, err
	}
	defer f.Close()

	cfg, err := config.Parse(f)
	if err != nil {
		return runOptions{}, fmt.Errorf("parsing %s: %v", *configFile, err)
	}

	d, _ := utf8.DecodeRuneInString(cfg.Data.Delimiter)
	return runOptions{
		dataFile:  cfg.Data.Path,
		delimiter: d,
		header:    cfg.Data.Header,
		attrNames: cfg.Data.Attributes,
		textFile:  cfg.Output.Text,
		dotFile:   cfg.Output.Dot,
		svgFile:   cfg.Output.SVG,
		modelFile: cfg.Output.Model,
		logLevel:  string(cfg.Loglevel),
	}, nil
}

func main() {
	flag.Parse()

	opt, err := parseRunOpts()
	if err != nil {
		fatal(err)
	}

	lvl, err := log.ParseLevel(opt.logLevel)
	if err != nil {
		fatal("invalid log level:", err)
	}
	log.SetLevel(lvl)

	if *runProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	// make sure user specified a data file
	if opt.dataFile == "" {
		fmt.Fprintf(os.Stderr, "Usage of decision-tree:\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(opt.dataFile)
	if err != nil {
		fatal("error opening data file:", err)
	}
	defer f.Close()

	rows, attrNames, err := parseData(f, opt.delimiter, opt.header)
	if err != nil {
		fatal("error parsing input data:", err)
	}
	if len(opt.attrNames) > 0 {
		attrNames = opt.attrNames
	}
	log.WithFields(log.Fields{"rows": len(rows), "attributes": len(attrNames)}).Info("dataset loaded")

	// consider non-blank *predictFile as prediction, analysis otherwise
	if *predictFile != "" {
		predict(opt, rows)
		return
	}
	analyze(opt, rows, attrNames)
}

func analyze(opt runOptions, rows [][]string, attrNames []string) {
	if err := writeReport(os.Stdout, rows, attrNames); err != nil {
		fatal("error writing report:", err)
	}

	t, err := tree.Build(rows, attrNames)
	if err != nil {
		fatal("error building tree:", err)
	}
	log.WithFields(log.Fields{"depth": t.Depth(), "nodes": t.Size()}).Info("decision tree built")

	if opt.textFile != "" {
		o, err := os.Create(opt.textFile)
		if err != nil {
			fatal("error creating", opt.textFile+":", err)
		}
		defer o.Close()

		if err := export.WriteText(o, t); err != nil {
			fatal("error writing text rendering:", err)
		}
		log.WithField("path", opt.textFile).Info("wrote text rendering")
	}

	dotPath := opt.dotFile
	if dotPath != "" {
		o, err := os.Create(dotPath)
		if err != nil {
			fatal("error creating", dotPath+":", err)
		}
		defer o.Close()

		if err := export.WriteDOT(o, t); err != nil {
			fatal("error writing dot rendering:", err)
		}
		log.WithField("path", dotPath).Info("wrote dot rendering")
	}

	if opt.svgFile != "" {
		if dotPath == "" {
			// no dot file requested, render from a temp one
			tmp, err := ioutil.TempFile("", "decision-tree-*.dot")
			if err != nil {
				fatal("error creating temp dot file:", err)
			}
			err = export.WriteDOT(tmp, t)
			tmp.Close()
			if err != nil {
				os.Remove(tmp.Name())
				fatal("error writing dot rendering:", err)
			}
			dotPath = tmp.Name()
			defer os.Remove(dotPath)
		}

		if err := export.RenderSVG(dotPath, opt.svgFile); err != nil {
			log.Warnln("svg rendering skipped:", err)
		} else {
			log.WithField("path", opt.svgFile).Info("wrote svg rendering")
		}
	}

	if opt.modelFile != "" {
		o, err := os.Create(opt.modelFile)
		if err != nil {
			fatal("error saving model:", err)
		}
		defer o.Close()

		if err := t.Save(o); err != nil {
			fatal("error saving model:", err)
		}
		log.WithField("path", opt.modelFile).Info("saved model")
	}
}

func predict(opt runOptions, rows [][]string) {
	if opt.modelFile == "" {
		fatal("predictions require a fitted model, pass -f")
	}

	t, err := loadModel(opt.modelFile)
	if err != nil {
		fatal("error opening model file:", err)
	}

	pred := t.Predict(rows)

	o, err := os.Create(*predictFile)
	if err != nil {
		fatal("error creating", *predictFile+":", err)
	}
	defer o.Close()

	if err := writePred(o, pred); err != nil {
		fatal("error writing predictions:", err)
	}
	log.WithFields(log.Fields{"rows": len(pred), "path": *predictFile}).Info("wrote predictions")
}

func loadModel(fName string) (*tree.Tree, error) {
	f, err := os.Open(fName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := new(tree.Tree)
	err = t.Load(f)
	return t, err
}

func fatal(a ...interface{}) {
	log.Fatalln(a...)
}

func writePred(w io.Writer, prediction []string) error {
	wtr := bufio.NewWriter(w)

	for _, pred := range prediction {
		_, err := wtr.WriteString(pred)
		if err != nil {
			return err
		}

		err = wtr.WriteByte('\n')
		if err != nil {
			return err
		}
	}

	return wtr.Flush()
}
