package main

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"os"

	"github.com/charithe/scicalc/pkg/calculator"
	isatty "github.com/mattn/go-isatty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("Calculator CLI", "A scientific keypad calculator CLI")

	addr      = app.Flag("addr", "Server address").Default("localhost:8080").String()
	insecure  = app.Flag("insecure", "Trust unknown CAs").Bool()
	plaintext = app.Flag("plaintext", "Use unencrypted connection").Bool()

	evalCmd  = app.Command("eval", "Evaluate a complete expression")
	evalExpr = evalCmd.Arg("expr", "Expression, e.g. '2*π+√(9)'").Required().String()

	streamCmd  = app.Command("stream", "Send key presses from stdin and print the final display")
	sessionCmd = app.Command("session", "Send key presses from stdin and print the display after each")

	localCmd   = app.Command("local", "Use the keypad without a server")
	localWidth = localCmd.Flag("width", "Display width").Default("22").Int()
)

func main() {
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case evalCmd.FullCommand():
		doEval()
	case streamCmd.FullCommand():
		doStream()
	case sessionCmd.FullCommand():
		doSession()
	case localCmd.FullCommand():
		doLocal()
	}
}

func doEval() {
	client, err := createClient()
	if err != nil {
		log.Printf("Failed to connect to server: %v", err)
		os.Exit(1)
	}
	defer client.Close()

	resp, err := client.Evaluate(context.Background(), *evalExpr)
	if err != nil {
		log.Printf("Evaluate call failed: %v", err)
		os.Exit(1)
	}

	fmt.Println(resp.Display)
}

func doStream() {
	client, err := createClient()
	if err != nil {
		log.Printf("Failed to connect to server: %v", err)
		os.Exit(1)
	}
	defer client.Close()

	log.Printf("Enter each key in a new line (C clears, DEL deletes, = evaluates). Press Ctrl+D to end")

	keyChan := make(chan string)
	go func() {
		defer close(keyChan)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if _, err := calculator.ParseKey(scanner.Text()); err != nil {
				log.Printf("Ignoring key: %v", err)
				continue
			}
			keyChan <- scanner.Text()
		}

		if err := scanner.Err(); err != nil {
			log.Printf("Failed to read stream: %v", err)
		}
	}()

	update, err := client.EvaluateStream(keyChan)
	if err != nil {
		log.Printf("Streaming call failed: %v", err)
		os.Exit(1)
	}

	fmt.Println(update.Display)
}

func doSession() {
	client, err := createClient()
	if err != nil {
		log.Printf("Failed to connect to server: %v", err)
		os.Exit(1)
	}
	defer client.Close()

	sess, err := client.Session(context.Background())
	if err != nil {
		log.Printf("Failed to open session: %v", err)
		os.Exit(1)
	}

	log.Printf("Enter each key in a new line (C clears, DEL deletes, = evaluates). Press Ctrl+D to end")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		update, err := sess.Press(scanner.Text())
		if err != nil {
			log.Printf("Key press failed: %v", err)
			break
		}
		fmt.Println(update.Display)
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Failed to read stream: %v", err)
	}

	if err := sess.Close(); err != nil {
		log.Printf("Failed to close session: %v", err)
	}
}

func doLocal() {
	buf := calculator.NewBuffer(*localWidth)

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		if err := runScripted(buf, os.Stdin, os.Stdout); err != nil {
			log.Printf("Failed to read keys: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := runPrompt(buf); err != nil {
		log.Printf("Prompt failed: %v", err)
		os.Exit(1)
	}
}

func createClient() (*calculator.Client, error) {
	var dialOpts []grpc.DialOption
	if *plaintext {
		dialOpts = append(dialOpts, grpc.WithInsecure())
	} else {
		tlsConf := &tls.Config{
			InsecureSkipVerify: *insecure,
		}
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(credentials.NewTLS(tlsConf)))
	}

	conn, err := grpc.Dial(*addr, dialOpts...)
	if err != nil {
		return nil, err
	}

	return calculator.NewClient(conn), nil
}
