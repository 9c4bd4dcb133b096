package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/breftejk/GraphicsEditor/pkg/imaging"
)

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  /  - select and apply command")
	fmt.Println("  o  - open another image at runtime")
	fmt.Println("  s  - save current image")
	fmt.Println("  z  - undo last applied command")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

// session holds the REPL state: the current image plus a history stack of
// prior buffers for undo.
type session struct {
	cur     imaging.Buffer
	loaded  bool
	format  string
	path    string
	history []imaging.Buffer
}

func (s *session) push(b imaging.Buffer) {
	s.history = append(s.history, s.cur)
	s.cur = b
}

func (s *session) undo() bool {
	if len(s.history) == 0 {
		return false
	}
	s.cur = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return true
}

func (s *session) open(path string) error {
	b, format, err := LoadImage(path)
	if err != nil {
		return err
	}
	s.cur = b
	s.loaded = true
	s.format = format
	s.path = path
	s.history = nil
	return nil
}

func RunCLI() {
	var inputImagePath string
	if len(os.Args) >= 2 {
		inputImagePath = os.Args[1]
	}

	store := NewMetaStore(imaging.Commands)

	var sess session
	if inputImagePath != "" {
		if err := sess.open(inputImagePath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", inputImagePath, err)
			os.Exit(1)
		}
		// Initial preview is optional; ignore errors so unsupported
		// terminals still get a working session.
		_ = PreviewBuffer(sess.cur, sess.format)
		fmt.Println(GetImageInfo(sess.cur, sess.format))
	}

	fmt.Println("Graphics Editor")
	usage()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		r, _, err := reader.ReadRune()
		if err != nil {
			fmt.Fprintf(os.Stderr, "read input error: %v\n", err)
			continue
		}

		switch r {
		case '/':
			if !sess.loaded {
				fmt.Println("No image loaded. Press 'o' to open an image first, or provide an image path as the first argument.")
				continue
			}
			commandName, ok := pickCommand(store)
			if !ok {
				continue
			}
			c, ok := store.Lookup(commandName)
			if !ok {
				fmt.Printf("unknown command: %s\n", commandName)
				continue
			}

			tooltip, _, _ := store.GetCommandHelp(commandName)
			fmt.Println("\n" + tooltip + "\n")

			rawArgs := make([]string, len(c.Args))
			for i, p := range c.Args {
				prompt := fmt.Sprintf("%s (%s): ", p.Name, p.Type)
				val, perr := PromptLine(prompt)
				if perr != nil {
					fmt.Fprintf(os.Stderr, "input error: %v\n", perr)
					val = ""
				}
				rawArgs[i] = val
			}

			normArgs, err := NormalizeArgs(store, commandName, rawArgs)
			if err != nil {
				fmt.Fprintf(os.Stderr, "input validation error: %v\n", err)
				fmt.Println("aborting command due to input errors")
				continue
			}

			newBuf, info, err := imaging.ApplyCommand(sess.cur, commandName, normArgs)
			if err != nil {
				fmt.Fprintf(os.Stderr, "apply command error: %v\n", err)
				continue
			}
			sess.push(newBuf)
			Log.Debug("applied command", "name", commandName, "args", normArgs)
			fmt.Printf("Applied %s\n", commandName)
			if info != "" {
				fmt.Println(info)
			}
			_ = PreviewBuffer(sess.cur, sess.format)
			fmt.Println(GetImageInfo(sess.cur, sess.format))
			continue

		case 'z':
			if !sess.undo() {
				fmt.Println("nothing to undo")
				continue
			}
			fmt.Println("Undid last command")
			_ = PreviewBuffer(sess.cur, sess.format)
			continue

		case 's':
			if !sess.loaded {
				fmt.Println("No image loaded.")
				continue
			}
			out, _ := PromptLine("Enter output filename: ")
			if out == "" {
				fmt.Println("no filename provided")
				continue
			}
			if err := SaveImage(out, sess.cur); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write image: %v\n", err)
				continue
			}
			fmt.Printf("Saved to %s\n", out)

		case 'o':
			selected, selErr := SelectFileWithFzf(".")
			var newPath string
			if selErr != nil || selected == "" {
				newPath, _ = PromptLine("Enter path to image to open (leave empty to cancel): ")
				if newPath == "" {
					fmt.Println("open cancelled")
					continue
				}
			} else {
				newPath = selected
			}

			if err := sess.open(newPath); err != nil {
				fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", newPath, err)
				continue
			}
			fmt.Printf("Opened %s\n", newPath)
			_ = PreviewBuffer(sess.cur, sess.format)
			fmt.Println(GetImageInfo(sess.cur, sess.format))
			continue

		case 'u':
			if err := CheckForUpdates(); err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			}
			continue

		case 'h':
			usage()
			continue

		case 'q':
			fmt.Println("Exiting...")
			return

		default:
			// ignore other keys
		}
	}
}

// pickCommand selects a command via fzf, falling back to a numbered textual
// list when fzf is unavailable. The second return is false when the selection
// was cancelled or invalid.
func pickCommand(store *MetaStore) (string, bool) {
	name, err := SelectCommandWithFzf(store.Commands)
	if err == nil && name != "" {
		return name, true
	}

	fmt.Println("Command selection (fallback):")
	for i, c := range store.Commands {
		fmt.Printf("  %d) %s - %s\n", i+1, c.Name, c.Description)
	}
	selection, _ := PromptLine("Enter number or command name (leave empty to cancel): ")
	if selection == "" {
		fmt.Println("selection cancelled")
		return "", false
	}
	if idx, perr := strconv.Atoi(selection); perr == nil {
		if idx < 1 || idx > len(store.Commands) {
			fmt.Println("invalid selection")
			return "", false
		}
		return store.Commands[idx-1].Name, true
	}

	selLower := strings.ToLower(selection)
	if _, ok := store.Lookup(selection); ok {
		return selection, true
	}
	var matches []string
	for _, c := range store.Commands {
		if strings.ToLower(c.Name) == selLower {
			return c.Name, true
		}
		if strings.HasPrefix(strings.ToLower(c.Name), selLower) {
			matches = append(matches, c.Name)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], true
	case 0:
		fmt.Printf("unknown command: %s\n", selection)
		return "", false
	default:
		fmt.Println("ambiguous selection, candidates:")
		for _, m := range matches {
			fmt.Println("  " + m)
		}
		return "", false
	}
}
