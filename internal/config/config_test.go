package config_test

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/CK6170/vectorkit/internal/config"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("falls back to defaults without a config file", func() {
		wd, err := os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(dir)).To(Succeed())
		DeferCleanup(os.Chdir, wd)

		v, err := config.InitViper("")
		Expect(err).NotTo(HaveOccurred())
		cfg, err := config.Load(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.NewDefaultConfig()))
	})

	It("reads a toml file", func() {
		path := filepath.Join(dir, "vectorkit.toml")
		Expect(os.WriteFile(path, []byte("[server]\nlisten = \":9090\"\n[display]\nformat = \".3f\"\n"), 0o644)).To(Succeed())

		v, err := config.InitViper(path)
		Expect(err).NotTo(HaveOccurred())
		cfg, err := config.Load(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Listen).To(Equal(":9090"))
		Expect(cfg.Display.Format).To(Equal(".3f"))
		Expect(cfg.Link.Baud).To(Equal(115200))
	})

	It("fails for an explicit missing file", func() {
		_, err := config.InitViper(filepath.Join(dir, "missing.toml"))
		Expect(err).To(HaveOccurred())
	})

	It("lets the environment override the file", func() {
		GinkgoT().Setenv("VECTORKIT_LINK_BAUD", "9600")

		path := filepath.Join(dir, "vectorkit.toml")
		Expect(os.WriteFile(path, []byte("[link]\nbaud = 19200\n"), 0o644)).To(Succeed())
		v, err := config.InitViper(path)
		Expect(err).NotTo(HaveOccurred())
		cfg, err := config.Load(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Link.Baud).To(Equal(9600))
	})

	It("lets bound flags override everything", func() {
		GinkgoT().Setenv("VECTORKIT_SERVER_LISTEN", ":7000")
		path := filepath.Join(dir, "vectorkit.toml")
		Expect(os.WriteFile(path, []byte(""), 0o644)).To(Succeed())

		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.String("listen", "", "")
		Expect(fs.Parse([]string{"--listen", ":6000"})).To(Succeed())

		v, err := config.InitViper(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(config.BindFlags(v, fs, map[string]string{"listen": "server.listen", "absent": "log.debug"})).To(Succeed())
		cfg, err := config.Load(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Server.Listen).To(Equal(":6000"))
	})
})
