package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type seedCategory struct {
	name, slug, color string
}

type seedAuthor struct {
	name, role, bio, avatar string
}

type seedPost struct {
	title, slug, excerpt, content, image string
	categoryID, authorID                 int64
	tags                                 string
	readTime                             int
	views                                int64
	featured                             bool
	createdAt                            string
}

type seedComment struct {
	postID                int64
	name, avatar, content string
	createdAt             string
}

var seedCategories = []seedCategory{
	{"SEO", "seo", "#2563eb"},
	{"Marketing de Conteúdo", "conteudo", "#7c3aed"},
	{"Tráfego", "trafego", "#059669"},
	{"Social Media", "social-media", "#e11d48"},
	{"Analytics", "analytics", "#d97706"},
	{"E-mail Marketing", "email-marketing", "#0891b2"},
	{"Branding", "branding", "#be185d"},
	{"PPC", "ppc", "#4f46e5"},
}

var seedAuthors = []seedAuthor{
	{"Ana Silva", "Editora Chefe", "Apaixonada por dados e storytelling. Ajuda marcas a encontrar sua voz no caos digital há mais de 10 anos.", "https://i.pravatar.cc/150?img=1"},
	{"Carlos Mendes", "Growth Hacker", "Especialista em estratégias de crescimento e automação de marketing.", "https://i.pravatar.cc/150?img=3"},
	{"Sofia Monteiro", "Especialista em SEO", "Consultora de SEO com foco em estratégias de conteúdo e link building.", "https://i.pravatar.cc/150?img=5"},
}

var seedPosts = []seedPost{
	{
		title:      "O Futuro do SEO em 2024: O que você precisa saber",
		slug:       "futuro-do-seo-2024",
		excerpt:    "Descubra as principais tendências e mudanças nos algoritmos de busca que impactarão drasticamente sua estratégia de marketing digital este ano.",
		content:    `<p class="mb-4">Nos últimos doze meses, o cenário de SEO passou por uma transformação mais radical do que na última década inteira.</p><h2 class="text-2xl font-bold text-text mt-8 mb-4">Entendendo a Mudança para a Busca Semântica</h2><p class="mb-4">A IA não está apenas lendo palavras; ela está entendendo conceitos.</p>`,
		image:      "https://picsum.photos/seed/seo2024/800/450",
		categoryID: 1, authorID: 1,
		tags:     `["SEO","InteligênciaArtificial","MarketingDigital"]`,
		readTime: 8, views: 15200, featured: true,
		createdAt: "2024-03-15 10:00:00",
	},
	{
		title:      "Estratégias de Conteúdo B2B que Convertem",
		slug:       "estrategias-conteudo-b2b",
		excerpt:    "Aprenda como criar conteúdo técnico e aprofundado que realmente ressoa com tomadores de decisão em empresas B2B.",
		content:    `<p class="mb-4">O marketing de conteúdo B2B exige uma abordagem diferente do B2C.</p>`,
		image:      "https://picsum.photos/seed/b2b/800/450",
		categoryID: 2, authorID: 2,
		tags:     `["B2B","Conteúdo","Estratégia"]`,
		readTime: 7, views: 8400,
		createdAt: "2024-03-12 14:00:00",
	},
	{
		title:      "Otimizando Ads em Redes Sociais: ROI Máximo",
		slug:       "otimizando-ads-redes-sociais",
		excerpt:    "Dicas práticas para reduzir o custo por clique e aumentar o retorno sobre investimento em suas campanhas pagas.",
		content:    `<p class="mb-4">Anúncios em redes sociais podem ser extremamente eficazes quando bem otimizados.</p>`,
		image:      "https://picsum.photos/seed/ads/800/450",
		categoryID: 4, authorID: 3,
		tags:     `["Ads","ROI","SocialMedia"]`,
		readTime: 5, views: 6200,
		createdAt: "2024-03-10 09:00:00",
	},
	{
		title:      "Guia Completo de Migração do GA4",
		slug:       "guia-migracao-ga4",
		excerpt:    "Tudo o que você precisa fazer antes do prazo final para garantir que seus dados históricos sejam preservados.",
		content:    `<p class="mb-4">A migração do Universal Analytics para o Google Analytics 4 é uma das mudanças mais significativas no mundo da análise de dados web.</p>`,
		image:      "https://picsum.photos/seed/ga4/800/450",
		categoryID: 5, authorID: 1,
		tags:     `["Analytics","GA4","Google"]`,
		readTime: 10, views: 12100,
		createdAt: "2024-03-08 11:00:00",
	},
	{
		title:      "Soft Skills Essenciais para Marketing em 2024",
		slug:       "soft-skills-marketing-2024",
		excerpt:    "Por que a adaptabilidade e a comunicação clara estão se tornando mais valiosas que o conhecimento técnico puro.",
		content:    `<p class="mb-4">No cenário atual de marketing digital, as habilidades técnicas são apenas metade da equação.</p>`,
		image:      "https://picsum.photos/seed/skills/800/450",
		categoryID: 2, authorID: 2,
		tags:     `["Carreira","SoftSkills","Marketing"]`,
		readTime: 4, views: 3800,
		createdAt: "2024-03-05 16:00:00",
	},
	{
		title:      "Como construir backlinks de alta qualidade sem gastar nada",
		slug:       "backlinks-alta-qualidade-gratis",
		excerpt:    "Estratégias práticas de link building focadas em relacionamento e criação de conteúdo viral para aquisição orgânica de links.",
		content:    `<p class="mb-4">Link building continua sendo um dos pilares mais importantes do SEO.</p>`,
		image:      "https://picsum.photos/seed/links/800/450",
		categoryID: 1, authorID: 3,
		tags:     `["SEO","LinkBuilding","Backlinks"]`,
		readTime: 12, views: 9800,
		createdAt: "2024-02-28 08:00:00",
	},
	{
		title:      "SEO para Mobile: Otimizando para a era Mobile-First",
		slug:       "seo-mobile-first",
		excerpt:    "Com a indexação mobile-first do Google, garantir que seu site seja responsivo e rápido nunca foi tão importante.",
		content:    `<p class="mb-4">O Google agora prioriza a versão mobile do seu site para indexação e ranking.</p>`,
		image:      "https://picsum.photos/seed/mobile/800/450",
		categoryID: 1, authorID: 1,
		tags:     `["SEO","Mobile","Performance"]`,
		readTime: 6, views: 7200,
		createdAt: "2024-02-25 13:00:00",
	},
	{
		title:      "Top 10 Ferramentas de Automação de Marketing",
		slug:       "ferramentas-automacao-marketing",
		excerpt:    "Uma análise detalhada das melhores ferramentas para automatizar seus fluxos de marketing e aumentar a produtividade.",
		content:    `<p class="mb-4">A automação de marketing permite escalar suas operações sem aumentar proporcionalmente sua equipe.</p>`,
		image:      "https://picsum.photos/seed/tools/800/450",
		categoryID: 6, authorID: 2,
		tags:     `["Automação","Ferramentas","Produtividade"]`,
		readTime: 9, views: 11500,
		createdAt: "2024-02-20 10:00:00",
	},
	{
		title:      "Guia Completo de Core Web Vitals para 2024",
		slug:       "core-web-vitals-2024",
		excerpt:    "Entenda as novas métricas de experiência do usuário do Google e como elas impactam seu ranking nos resultados de busca.",
		content:    `<p class="mb-4">Core Web Vitals são métricas essenciais que o Google usa para avaliar a experiência do usuário no seu site.</p>`,
		image:      "https://picsum.photos/seed/cwv/800/450",
		categoryID: 1, authorID: 3,
		tags:     `["SEO","Performance","CoreWebVitals"]`,
		readTime: 8, views: 6500,
		createdAt: "2024-02-15 09:00:00",
	},
	{
		title:      "O Guia Definitivo de Link Building",
		slug:       "guia-definitivo-link-building",
		excerpt:    "Tudo que você precisa saber sobre construção de links em 2024, desde outreach até digital PR.",
		content:    `<p class="mb-4">Link building é uma arte e uma ciência.</p>`,
		image:      "https://picsum.photos/seed/linkbuild/800/450",
		categoryID: 1, authorID: 1,
		tags:     `["SEO","LinkBuilding"]`,
		readTime: 15, views: 6500,
		createdAt: "2024-02-10 14:00:00",
	},
}

var seedComments = []seedComment{
	{1, "Lucas Silva", "https://i.pravatar.cc/150?img=11", "Ótima análise, Sofia! A parte sobre E-E-A-T é crucial. Tenho visto muitos dos meus projetos caírem por falta de autoridade no conteúdo.", "2024-03-16 08:00:00"},
	{1, "Maria Santos", "https://i.pravatar.cc/150?img=21", "Excelente artigo! Seria legal um follow-up sobre como implementar topic clusters na prática.", "2024-03-16 12:00:00"},
	{1, "Pedro Oliveira", "https://i.pravatar.cc/150?img=15", "Concordo 100%. A busca semântica está mudando tudo. Precisamos nos adaptar rapidamente.", "2024-03-17 09:00:00"},
}

// Default admin credentials created on first run.
const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"
)

// Seed populates an empty database with the default categories, authors,
// sample posts and comments, and the admin account. It does nothing when
// any user already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	// Content tables are only filled when they are still empty, so a
	// database whose users were removed by hand keeps its posts.
	var posts int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&posts); err != nil {
		return fmt.Errorf("seed check posts: %w", err)
	}

	if posts == 0 {
		if err := seedContent(ctx, tx); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (username, password, name, avatar, role)
		VALUES ($1, $2, $3, $4, $5)
	`, seedAdminUsername, string(hash), "Administrador", "https://i.pravatar.cc/150?img=68", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Warn("database seeded with default admin user, change its password",
		"username", seedAdminUsername,
	)

	return nil
}

func seedContent(ctx context.Context, tx *sql.Tx) error {
	for _, c := range seedCategories {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO categories (name, slug, color) VALUES ($1, $2, $3)",
			c.name, c.slug, c.color,
		); err != nil {
			return fmt.Errorf("seed insert category %s: %w", c.slug, err)
		}
	}

	for _, a := range seedAuthors {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO authors (name, role, bio, avatar) VALUES ($1, $2, $3, $4)",
			a.name, a.role, a.bio, a.avatar,
		); err != nil {
			return fmt.Errorf("seed insert author %s: %w", a.name, err)
		}
	}

	for _, p := range seedPosts {
		created, err := time.ParseInLocation("2006-01-02 15:04:05", p.createdAt, time.UTC)
		if err != nil {
			return fmt.Errorf("seed parse post date: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO posts (title, slug, excerpt, content, featured_image, category_id, author_id,
			                   tags, read_time, views, status, featured, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, 'published', $11, $12, $12)
		`, p.title, p.slug, p.excerpt, p.content, p.image, p.categoryID, p.authorID,
			p.tags, p.readTime, p.views, p.featured, created,
		); err != nil {
			return fmt.Errorf("seed insert post %s: %w", p.slug, err)
		}
	}

	for _, c := range seedComments {
		created, err := time.ParseInLocation("2006-01-02 15:04:05", c.createdAt, time.UTC)
		if err != nil {
			return fmt.Errorf("seed parse comment date: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO comments (post_id, author_name, avatar, content, created_at)
			VALUES ((SELECT id FROM posts WHERE slug = $1), $2, $3, $4, $5)
		`, seedPosts[c.postID-1].slug, c.name, c.avatar, c.content, created,
		); err != nil {
			return fmt.Errorf("seed insert comment: %w", err)
		}
	}

	return nil
}
